package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrForbidden is returned when the acting user's role may not perform the operation
	ErrForbidden = errors.New("operation not permitted for role")

	// ErrOfferNotFound is returned when an offer cannot be found
	ErrOfferNotFound = errors.New("offer not found")

	// ErrOfferInUse is returned when deleting an offer that discounts still reference
	ErrOfferInUse = errors.New("offer still referenced by discounts")

	// ErrDiscountNotFound is returned when a discount cannot be found
	ErrDiscountNotFound = errors.New("discount not found")

	// ErrDiscountInUse is returned when deleting a discount that coupon codes still reference
	ErrDiscountInUse = errors.New("discount still referenced by coupon codes")

	// ErrCouponNotFound is returned when a coupon code cannot be found
	ErrCouponNotFound = errors.New("coupon code not found")

	// ErrCouponExists is returned when creating a coupon whose normalized code already exists
	ErrCouponExists = errors.New("coupon code already exists")

	// ErrCouponExhausted is returned when a redemption would exceed the coupon's cap
	ErrCouponExhausted = errors.New("coupon redemption limit reached")

	// ErrCouponInactive is returned when redeeming a deactivated coupon
	ErrCouponInactive = errors.New("coupon code is inactive")
)

// FieldError reports a request field that violates an invariant. The caller
// can always recover by correcting the named field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func fieldErr(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
