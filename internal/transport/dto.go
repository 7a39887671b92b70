package transport

import "github.com/fakhama/costume_rental/internal/models"

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Surname  string `json:"surname"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

type ProfileResponse struct {
	User         *models.User         `json:"user"`
	ActiveRental *models.Reservation  `json:"activeRental"`
	History      []models.Reservation `json:"history"`
}

// CartItem is one line item of a cart submission. The items field of the
// multipart request is a JSON-encoded string holding a list of these.
type CartItem struct {
	ProductID uint   `json:"product_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Size      string `json:"size"`
}

const (
	CartItemCreated = "created"
	CartItemSkipped = "skipped"
)

// CartItemResult reports what happened to a single line item: unresolvable
// products are skipped without failing the submission, and the caller gets
// to see which ones were dropped.
type CartItemResult struct {
	ProductID     uint    `json:"product_id"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason,omitempty"`
	ReservationID uint    `json:"reservation_id,omitempty"`
	TotalPrice    float64 `json:"total_price,omitempty"`
}

type CartResult struct {
	Message string           `json:"message"`
	Items   []CartItemResult `json:"items"`
}

type ToggleFavoriteRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
}

type ToggleFavoriteResponse struct {
	Status     string `json:"status"`
	IsFavorite bool   `json:"is_favorite"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type StatsResponse struct {
	Revenue       float64 `json:"revenue"`
	ActiveRentals int64   `json:"activeRentals"`
	TotalProducts int64   `json:"totalProducts"`
}
