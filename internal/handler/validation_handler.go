package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
)

// ValidationServiceInterface defines the interface for the validation pipeline.
type ValidationServiceInterface interface {
	Validate(ctx context.Context, req *model.ValidateRequest) (*model.ValidationResult, error)
}

// ValidationHandler handles HTTP requests for discount/coupon validation.
type ValidationHandler struct {
	service ValidationServiceInterface
}

// NewValidationHandler creates a new ValidationHandler with the given service.
func NewValidationHandler(svc ValidationServiceInterface) *ValidationHandler {
	return &ValidationHandler{service: svc}
}

// Validate handles POST /api/validate. Both verdicts are 200 responses; an
// error status means the check itself could not be performed.
func (h *ValidationHandler) Validate(c *fiber.Ctx) error {
	var req model.ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.Validate(c.Context(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	if !result.Valid {
		log.Debug().
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("reason", result.Reason).
			Msg("validation rejected")
	}
	return c.JSON(result)
}
