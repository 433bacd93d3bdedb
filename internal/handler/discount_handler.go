package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
)

// DiscountServiceInterface defines the interface for discount business logic.
type DiscountServiceInterface interface {
	Create(ctx context.Context, actor model.Actor, req *model.CreateDiscountRequest) (*model.Discount, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Discount, error)
	List(ctx context.Context, filter model.DiscountFilter) ([]model.Discount, error)
	Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateDiscountRequest) (*model.Discount, error)
	Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

// DiscountHandler handles HTTP requests for the discount registry.
type DiscountHandler struct {
	service   DiscountServiceInterface
	validator *validator.Validate
}

// NewDiscountHandler creates a new DiscountHandler with the given service and validator.
func NewDiscountHandler(svc DiscountServiceInterface, v *validator.Validate) *DiscountHandler {
	return &DiscountHandler{service: svc, validator: v}
}

// CreateDiscount handles POST /api/discounts.
func (h *DiscountHandler) CreateDiscount(c *fiber.Ctx) error {
	var req model.CreateDiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	discount, err := h.service.Create(c.Context(), requestActor(c), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(discount)
}

// ListDiscounts handles GET /api/discounts?include_inactive&offer_id.
func (h *DiscountHandler) ListDiscounts(c *fiber.Ctx) error {
	filter := model.DiscountFilter{
		IncludeInactive: c.QueryBool("include_inactive"),
	}
	if raw := c.Query("offer_id"); raw != "" {
		offerID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: offer_id must be a valid UUID"})
		}
		filter.OfferID = &offerID
	}

	discounts, err := h.service.List(c.Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(discounts)
}

// GetDiscount handles GET /api/discounts/:id.
func (h *DiscountHandler) GetDiscount(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id must be a valid UUID"})
	}

	discount, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(discount)
}

// UpdateDiscount handles PUT /api/discounts/:id.
func (h *DiscountHandler) UpdateDiscount(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id must be a valid UUID"})
	}

	var req model.UpdateDiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	discount, err := h.service.Update(c.Context(), requestActor(c), id, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(discount)
}

// DeleteDiscount handles DELETE /api/discounts/:id.
// Deleting a discount that coupon codes still reference is rejected with 409.
func (h *DiscountHandler) DeleteDiscount(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id must be a valid UUID"})
	}

	if err := h.service.Delete(c.Context(), requestActor(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
