package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
)

// OfferServiceInterface defines the interface for offer business logic.
type OfferServiceInterface interface {
	Create(ctx context.Context, actor model.Actor, req *model.CreateOfferRequest) (*model.Offer, error)
	List(ctx context.Context) ([]model.Offer, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Offer, error)
	Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateOfferRequest) (*model.Offer, error)
	Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

// OfferHandler handles HTTP requests for the offer catalog.
type OfferHandler struct {
	service   OfferServiceInterface
	validator *validator.Validate
}

// NewOfferHandler creates a new OfferHandler with the given service and validator.
func NewOfferHandler(svc OfferServiceInterface, v *validator.Validate) *OfferHandler {
	return &OfferHandler{service: svc, validator: v}
}

// CreateOffer handles POST /api/offers.
func (h *OfferHandler) CreateOffer(c *fiber.Ctx) error {
	var req model.CreateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	offer, err := h.service.Create(c.Context(), requestActor(c), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// ListOffers handles GET /api/offers.
func (h *OfferHandler) ListOffers(c *fiber.Ctx) error {
	offers, err := h.service.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(offers)
}

// GetOffer handles GET /api/offers/:id.
func (h *OfferHandler) GetOffer(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id must be a valid UUID"})
	}

	offer, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(offer)
}

// UpdateOffer handles PUT /api/offers/:id.
func (h *OfferHandler) UpdateOffer(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id must be a valid UUID"})
	}

	var req model.UpdateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	offer, err := h.service.Update(c.Context(), requestActor(c), id, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(offer)
}

// DeleteOffer handles DELETE /api/offers/:id.
// Deleting an offer that discounts still reference is rejected with 409.
func (h *OfferHandler) DeleteOffer(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id must be a valid UUID"})
	}

	if err := h.service.Delete(c.Context(), requestActor(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
