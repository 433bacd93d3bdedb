package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/hotel-backoffice/internal/service"
)

// formatValidationError converts validator errors into stable messages
// naming the offending field.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := snakeField(fe.Field())
			switch fe.Tag() {
			case "required":
				return "invalid request: " + field + " is required"
			case "notblank":
				return "invalid request: " + field + " cannot be whitespace only"
			case "max":
				return "invalid request: " + field + " exceeds maximum length"
			default:
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// snakeField lowercases a struct field name into its json form.
func snakeField(name string) string {
	out := make([]byte, 0, len(name)+4)
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch >= 'A' && ch <= 'Z' {
			if i > 0 && name[i-1] >= 'a' && name[i-1] <= 'z' {
				out = append(out, '_')
			}
			ch += 'a' - 'A'
		}
		out = append(out, ch)
	}
	return string(out)
}

// respondServiceError maps service layer errors onto HTTP statuses:
// FieldError 400, forbidden 403, not-found sentinels 404, write conflicts
// 409, everything else 500. Store failures are logged and never disguised
// as business outcomes.
func respondServiceError(c *fiber.Ctx, err error) error {
	var ferr *service.FieldError
	if errors.As(err, &ferr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ferr.Error(),
			"field": ferr.Field,
		})
	}

	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "operation not permitted for role"})
	case errors.Is(err, service.ErrOfferNotFound),
		errors.Is(err, service.ErrDiscountNotFound),
		errors.Is(err, service.ErrCouponNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrOfferInUse),
		errors.Is(err, service.ErrDiscountInUse),
		errors.Is(err, service.ErrCouponExists),
		errors.Is(err, service.ErrCouponInactive),
		errors.Is(err, service.ErrCouponExhausted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
