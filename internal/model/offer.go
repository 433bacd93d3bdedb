package model

import (
	"time"

	"github.com/google/uuid"
)

// Offer is a named campaign grouping one or more discounts.
// DisplayOrder is a user-controlled sort hint, not unique.
type Offer struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateOfferRequest is the DTO for creating an offer.
type CreateOfferRequest struct {
	Name         string  `json:"name" validate:"required,notblank,max=255"`
	Description  *string `json:"description" validate:"omitempty,max=1000"`
	DisplayOrder *int    `json:"display_order"`
}

// UpdateOfferRequest is the patch DTO for updating an offer.
// Nil fields are left unchanged.
type UpdateOfferRequest struct {
	Name         *string `json:"name" validate:"omitempty,notblank,max=255"`
	Description  *string `json:"description" validate:"omitempty,max=1000"`
	DisplayOrder *int    `json:"display_order"`
}
