package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountKind enumerates the supported discount strategies.
type DiscountKind string

const (
	// KindPercentage reduces the booking total by a percentage of itself.
	KindPercentage DiscountKind = "percentage"
	// KindFixedAmount reduces the booking total by a fixed amount, capped
	// at the total so the net never goes below zero.
	KindFixedAmount DiscountKind = "fixed_amount"
)

// Discount is a reduction rule, optionally time-bounded and offer-scoped.
type Discount struct {
	ID                uuid.UUID       `json:"id"`
	OfferID           *uuid.UUID      `json:"offer_id,omitempty"`
	Kind              DiscountKind    `json:"kind"`
	Value             decimal.Decimal `json:"value"`
	StartDate         *time.Time      `json:"start_date,omitempty"`
	EndDate           *time.Time      `json:"end_date,omitempty"`
	IsActive          bool            `json:"is_active"`
	MaxUsesTotal      *int            `json:"max_uses_total,omitempty"`
	MaxUsesPerBooking *int            `json:"max_uses_per_booking,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateDiscountRequest is the DTO for creating a discount.
// Value and date invariants are enforced by the service layer so failures
// can name the offending field.
type CreateDiscountRequest struct {
	OfferID           *string         `json:"offer_id"`
	Kind              string          `json:"kind" validate:"required,oneof=percentage fixed_amount"`
	Value             decimal.Decimal `json:"value"`
	StartDate         *time.Time      `json:"start_date"`
	EndDate           *time.Time      `json:"end_date"`
	IsActive          *bool           `json:"is_active"`
	MaxUsesTotal      *int            `json:"max_uses_total"`
	MaxUsesPerBooking *int            `json:"max_uses_per_booking"`
}

// UpdateDiscountRequest is the patch DTO for updating a discount.
// Nil fields are left unchanged.
type UpdateDiscountRequest struct {
	Kind              *string          `json:"kind" validate:"omitempty,oneof=percentage fixed_amount"`
	Value             *decimal.Decimal `json:"value"`
	StartDate         *time.Time       `json:"start_date"`
	EndDate           *time.Time       `json:"end_date"`
	IsActive          *bool            `json:"is_active"`
	MaxUsesTotal      *int             `json:"max_uses_total"`
	MaxUsesPerBooking *int             `json:"max_uses_per_booking"`
}

// DiscountFilter narrows a discount listing.
// With IncludeInactive false (the default), inactive rows and rows whose
// end date has already passed are excluded.
type DiscountFilter struct {
	IncludeInactive bool
	OfferID         *uuid.UUID
}
