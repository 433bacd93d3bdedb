package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Redemption is one consumed use of a coupon code, appended to the usage
// log when the invoice flow commits. Code is snapshotted so the report
// stays readable after the coupon itself is deleted.
type Redemption struct {
	ID         uuid.UUID       `json:"id"`
	CouponID   uuid.UUID       `json:"coupon_id"`
	Code       string          `json:"code"`
	DiscountID uuid.UUID       `json:"discount_id"`
	Amount     decimal.Decimal `json:"amount"`
	RedeemedAt time.Time       `json:"redeemed_at"`
}
