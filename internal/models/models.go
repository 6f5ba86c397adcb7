// file: internal/models/models.go
package models

import (
	"time"
)

// ===============================
// CORE ENTITIES
// ===============================

// User represents a registered user
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" db:"email" validate:"required,email,max=320"`
	Name     string `json:"name" db:"name" validate:"required,max=100"`

	// Authentication
	PasswordHash string `json:"-" db:"password_hash"`
	IsActive     bool   `json:"is_active" db:"is_active"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	LastSeen  time.Time `json:"last_seen" db:"last_seen"`

	// Computed/joined fields (not in DB)
	BadgeCount int `json:"badge_count,omitempty" db:"-"`
}

// Spot represents a picnic location that can be booked and reviewed
type Spot struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name" validate:"required,max=150"`
	Landmark    *string `json:"landmark,omitempty" db:"landmark" validate:"omitempty,max=150"`
	Description *string `json:"description,omitempty" db:"description"`
	IsActive    bool    `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Booking represents a picnic booking made by a user
type Booking struct {
	ID      int64     `json:"id" db:"id"`
	UserID  int64     `json:"user_id" db:"user_id"`
	SpotID  *int64    `json:"spot_id,omitempty" db:"spot_id"`
	Name    string    `json:"name" db:"name" validate:"required,max=100"`
	Date    time.Time `json:"date" db:"date" validate:"required"`
	People  int       `json:"people" db:"people" validate:"required,min=1,max=100"`
	Payment float64   `json:"payment" db:"payment" validate:"required,min=0"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Review represents a review of a picnic location
type Review struct {
	ID              int64  `json:"id" db:"id"`
	UserID          int64  `json:"user_id" db:"user_id"`
	SpotID          *int64 `json:"spot_id,omitempty" db:"spot_id"`
	LocationName    string `json:"location_name" db:"location_name" validate:"required,max=150"`
	NearestLandmark string `json:"nearest_landmark" db:"nearest_landmark" validate:"required,max=150"`
	Reason          string `json:"reason" db:"reason" validate:"required,max=2000"`

	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}

// ===============================
// PAGINATION
// ===============================

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Limit  int    `json:"limit" validate:"min=0,max=100"`
	Offset int    `json:"offset" validate:"min=0"`
	Sort   string `json:"sort,omitempty" validate:"omitempty,oneof=created_at submitted_at date id"`
	Order  string `json:"order,omitempty" validate:"omitempty,oneof=asc desc"`
}

// Normalize applies defaults and caps to pagination parameters
func (p *PaginationParams) Normalize() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Order == "" {
		p.Order = "desc"
	}
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}
