package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
)

// Machine-readable reason codes carried by invalid verdicts, stable for UI
// localization.
const (
	ReasonCouponNotFound      = "coupon_not_found"
	ReasonCouponInactive      = "coupon_inactive"
	ReasonCouponExpired       = "coupon_expired"
	ReasonCouponExhausted     = "coupon_exhausted"
	ReasonDiscountInactive    = "discount_inactive"
	ReasonDiscountOutOfWindow = "discount_out_of_window"
	ReasonOfferMismatch       = "offer_mismatch"
)

// CouponFinder is the coupon lookup the pipeline needs.
// A nil coupon with a nil error means "no such code".
type CouponFinder interface {
	FindByCode(ctx context.Context, code string) (*model.CouponCode, error)
}

// DiscountGetter is the discount lookup the pipeline needs.
// A nil discount with a nil error means "no such discount".
type DiscountGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Discount, error)
}

// ValidationService decides whether a proposed discount or coupon
// application is legal for a booking context. It holds no state of its own
// and re-reads current rows on every call, so validation stays idempotent
// and safe to run speculatively; redemption is the caller's separate,
// post-commit step.
type ValidationService struct {
	coupons   CouponFinder
	discounts DiscountGetter
	now       func() time.Time
}

// NewValidationService creates a ValidationService with the given lookups.
func NewValidationService(coupons CouponFinder, discounts DiscountGetter) *ValidationService {
	return &ValidationService{coupons: coupons, discounts: discounts, now: time.Now}
}

// NewValidationServiceWithClock creates a ValidationService with a fixed
// clock. Primarily used for testing.
func NewValidationServiceWithClock(coupons CouponFinder, discounts DiscountGetter, now func() time.Time) *ValidationService {
	return &ValidationService{coupons: coupons, discounts: discounts, now: now}
}

func invalid(reason string) *model.ValidationResult {
	return &model.ValidationResult{Valid: false, Reason: reason}
}

// Validate runs the full constraint pipeline. A business "no" comes back as
// a valid:false result with a reason code; an error return always means the
// check itself could not be performed.
func (s *ValidationService) Validate(ctx context.Context, req *model.ValidateRequest) (*model.ValidationResult, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	hasCode := req.CouponCode != nil && model.NormalizeCode(*req.CouponCode) != ""
	hasDiscount := req.DiscountID != nil && *req.DiscountID != ""
	if hasCode == hasDiscount {
		return nil, fieldErr("coupon_code", "exactly one of coupon_code or discount_id must be provided")
	}
	if req.BookingTotal.IsNegative() {
		return nil, fieldErr("booking_total", "must not be negative")
	}

	requestedAt := s.now()
	if req.RequestedAt != nil {
		requestedAt = *req.RequestedAt
	}

	// Step 1: resolve a coupon code to its underlying discount.
	var discountID uuid.UUID
	if hasCode {
		coupon, err := s.coupons.FindByCode(ctx, model.NormalizeCode(*req.CouponCode))
		if err != nil {
			return nil, fmt.Errorf("resolve coupon: %w", err)
		}
		switch {
		case coupon == nil:
			return invalid(ReasonCouponNotFound), nil
		case !coupon.IsActive:
			return invalid(ReasonCouponInactive), nil
		case coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(requestedAt):
			return invalid(ReasonCouponExpired), nil
		case coupon.Exhausted():
			return invalid(ReasonCouponExhausted), nil
		}
		discountID = coupon.DiscountID
	} else {
		id, err := uuid.Parse(*req.DiscountID)
		if err != nil {
			return nil, fieldErr("discount_id", "must be a valid UUID")
		}
		discountID = id
	}

	// Step 2: load the discount. A missing row and a deactivated row are
	// the same business outcome.
	discount, err := s.discounts.GetByID(ctx, discountID)
	if err != nil {
		return nil, fmt.Errorf("load discount: %w", err)
	}
	if discount == nil || !discount.IsActive {
		return invalid(ReasonDiscountInactive), nil
	}

	// Step 3: date window.
	if discount.StartDate != nil && requestedAt.Before(*discount.StartDate) {
		return invalid(ReasonDiscountOutOfWindow), nil
	}
	if discount.EndDate != nil && requestedAt.After(*discount.EndDate) {
		return invalid(ReasonDiscountOutOfWindow), nil
	}

	// Step 4: offer scope. A discount scoped to an offer requires the
	// caller to be operating in that offer's context; supplying no offer
	// counts as a mismatch.
	if discount.OfferID != nil {
		if req.OfferID == nil {
			return invalid(ReasonOfferMismatch), nil
		}
		offerID, err := uuid.Parse(*req.OfferID)
		if err != nil {
			return nil, fieldErr("offer_id", "must be a valid UUID")
		}
		if offerID != *discount.OfferID {
			return invalid(ReasonOfferMismatch), nil
		}
	}

	// Step 5: amount, computed and rounded exactly once so repeated calls
	// with identical inputs are byte-identical.
	return &model.ValidationResult{
		Valid: true,
		AppliedDiscount: &model.AppliedDiscount{
			ID:             discount.ID,
			Kind:           discount.Kind,
			Value:          discount.Value,
			ComputedAmount: computeAmount(discount, req.BookingTotal),
		},
	}, nil
}

// computeAmount applies the discount rule to the booking total, rounding
// half-up to 2 decimal places. Fixed amounts are capped at the total so the
// net never goes below zero.
func computeAmount(d *model.Discount, bookingTotal decimal.Decimal) decimal.Decimal {
	switch d.Kind {
	case model.KindFixedAmount:
		return decimal.Min(d.Value, bookingTotal).Round(2)
	default: // percentage
		return bookingTotal.Mul(d.Value).Div(oneHundred).Round(2)
	}
}
