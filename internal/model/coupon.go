package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponCode is a redeemable key bound to one discount, with an optional
// redemption cap and expiry. Code is stored normalized (trimmed, uppercase)
// so lookups are case-insensitive.
type CouponCode struct {
	ID              uuid.UUID  `json:"id"`
	Code            string     `json:"code"`
	DiscountID      uuid.UUID  `json:"discount_id"`
	MaxRedemptions  *int       `json:"max_redemptions,omitempty"`
	RedemptionCount int        `json:"redemption_count"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Exhausted reports whether the coupon's redemption cap has been reached.
func (c *CouponCode) Exhausted() bool {
	return c.MaxRedemptions != nil && c.RedemptionCount >= *c.MaxRedemptions
}

// NormalizeCode trims surrounding whitespace and uppercases a coupon code.
// Applied on both write and lookup paths.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateCouponRequest is the DTO for creating a coupon code.
type CreateCouponRequest struct {
	Code           string     `json:"code" validate:"required,notblank,max=255"`
	DiscountID     string     `json:"discount_id" validate:"required,uuid4"`
	MaxRedemptions *int       `json:"max_redemptions" validate:"omitempty,gte=1"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// LookupCouponRequest is the DTO for the interactive code lookup.
type LookupCouponRequest struct {
	Code string `json:"code" validate:"required,notblank,max=255"`
}

// RedeemCouponRequest is the DTO for recording one redemption of a coupon.
// Amount is the discount amount the committed booking actually applied.
type RedeemCouponRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
