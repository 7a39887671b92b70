package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CategoryAll         = "TOUT"
	CategoryMariage     = "MARIAGE"
	CategoryBusiness    = "BUSINESS"
	CategorySoiree      = "SOIRÉE"
	CategoryAccessoires = "ACCESSOIRES"
)

// Categories is the fixed category set. CategoryAll doubles as the
// "no filter" sentinel on product listing.
var Categories = []string{CategoryAll, CategoryMariage, CategoryBusiness, CategorySoiree, CategoryAccessoires}

const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusLate     = "late"
	StatusReturned = "returned"
)

var Statuses = []string{StatusPending, StatusActive, StatusLate, StatusReturned}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null"                 json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Product struct {
	ID          uint                        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string                      `gorm:"not null"                 json:"name"`
	Description string                      `gorm:"not null"                 json:"description"`
	Price       float64                     `gorm:"not null"                 json:"price"`
	Sizes       datatypes.JSONSlice[string] `json:"sizes"`
	Image       string                      `gorm:"not null"                 json:"image"`
	Category    string                      `gorm:"not null;default:TOUT"    json:"category"`
	Tag         string                      `json:"tag"`
	IsFeatured  bool                        `gorm:"default:false"            json:"is_featured"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// Reservation carries a snapshot of the product (name, image, size) taken at
// booking time, so later product edits never rewrite rental history.
// TotalPrice is likewise fixed at creation and never recomputed.
type Reservation struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"index;not null"           json:"user_id"`
	ProductID    uint      `gorm:"index;not null"           json:"product_id"`
	CIN          string    `gorm:"not null"                 json:"cin"`
	StartDate    time.Time `gorm:"not null"                 json:"start_date"`
	EndDate      time.Time `gorm:"not null"                 json:"end_date"`
	TotalPrice   float64   `gorm:"not null"                 json:"total_price"`
	Status       string    `gorm:"not null;default:pending" json:"status"`
	ProductName  string    `gorm:"not null"                 json:"product_name"`
	ProductImage string    `gorm:"not null"                 json:"product_image"`
	Size         string    `gorm:"not null"                 json:"size"`
	CreatedAt    time.Time `json:"created_at"`

	User    *User    `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Product *Product `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
}

type Favorite struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                        json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
}
