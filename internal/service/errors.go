package service

import "errors"

var (
	ErrValidation  = errors.New("validation")  // 400
	ErrCredentials = errors.New("credentials") // 401
	ErrNotFound    = errors.New("not found")   // 404
	ErrConflict    = errors.New("conflict")    // 409
)
