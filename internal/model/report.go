package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UsageRow is one aggregated line of the discount usage report: how often a
// coupon was redeemed inside the window and the total discount it granted.
type UsageRow struct {
	CouponID            uuid.UUID       `json:"coupon_id"`
	Code                string          `json:"code"`
	DiscountID          uuid.UUID       `json:"discount_id"`
	Redemptions         int             `json:"redemptions"`
	TotalDiscountAmount decimal.Decimal `json:"total_discount_amount"`
}
