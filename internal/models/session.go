package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-user dashboard state. SelectedCategory is the category
// tile the user last clicked; RefreshToken is a unix timestamp carried into
// image URLs so browsers refetch product images after a new selection. It
// has no correctness meaning.
type Session struct {
	ID               uuid.UUID `json:"id"`
	SelectedCategory string    `json:"selected_category"`
	RefreshToken     int64     `json:"refresh_token"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
