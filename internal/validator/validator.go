package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// New builds the validator used by every handler. Custom rules are
// registered here once so handlers and tests validate identically.
func New() *validator.Validate {
	v := validator.New()

	// "notblank" rejects strings that are empty after trimming. Offer
	// names and coupon codes pass `required` with "   " but are useless,
	// so those fields carry both tags.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true // non-string fields are out of scope for this rule
		}
		return strings.TrimSpace(str) != ""
	})

	return v
}
