package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidateRequest is the caller-supplied booking context a discount or
// coupon application is evaluated against. Exactly one of CouponCode or
// DiscountID must be set. RequestedAt defaults to the current time.
type ValidateRequest struct {
	CouponCode   *string         `json:"coupon_code"`
	DiscountID   *string         `json:"discount_id"`
	OfferID      *string         `json:"offer_id"`
	BookingTotal decimal.Decimal `json:"booking_total"`
	RequestedAt  *time.Time      `json:"requested_at"`
}

// AppliedDiscount describes the discount a successful validation resolved,
// including the amount computed for the booking total.
type AppliedDiscount struct {
	ID             uuid.UUID       `json:"id"`
	Kind           DiscountKind    `json:"kind"`
	Value          decimal.Decimal `json:"value"`
	ComputedAmount decimal.Decimal `json:"computed_amount"`
}

// ValidationResult is the structured verdict of the validation pipeline.
// Reason carries a machine-readable code when Valid is false.
type ValidationResult struct {
	Valid           bool             `json:"valid"`
	Reason          string           `json:"reason,omitempty"`
	AppliedDiscount *AppliedDiscount `json:"applied_discount,omitempty"`
}
