package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
)

// CouponServiceInterface defines the interface for coupon code business logic.
type CouponServiceInterface interface {
	Create(ctx context.Context, actor model.Actor, req *model.CreateCouponRequest) (*model.CouponCode, error)
	FindByCode(ctx context.Context, code string) (*model.CouponCode, error)
	Get(ctx context.Context, id uuid.UUID) (*model.CouponCode, error)
	Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error
	RecordRedemption(ctx context.Context, couponID uuid.UUID, amount decimal.Decimal) (*model.Redemption, error)
}

// CouponHandler handles HTTP requests for coupon code operations.
type CouponHandler struct {
	service   CouponServiceInterface
	validator *validator.Validate
}

// NewCouponHandler creates a new CouponHandler with the given service and validator.
func NewCouponHandler(svc CouponServiceInterface, v *validator.Validate) *CouponHandler {
	return &CouponHandler{service: svc, validator: v}
}

// CreateCoupon handles POST /api/coupons.
func (h *CouponHandler) CreateCoupon(c *fiber.Ctx) error {
	var req model.CreateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	coupon, err := h.service.Create(c.Context(), requestActor(c), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// LookupCoupon handles POST /api/coupons/lookup. Lookup is case- and
// whitespace-insensitive; an unknown code is 404, never 500, so callers can
// tell a bad code from a system failure.
func (h *CouponHandler) LookupCoupon(c *fiber.Ctx) error {
	var req model.LookupCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	coupon, err := h.service.FindByCode(c.Context(), req.Code)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(coupon)
}

// GetCoupon handles GET /api/coupons/:id.
func (h *CouponHandler) GetCoupon(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id must be a valid UUID"})
	}

	coupon, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(coupon)
}

// DeleteCoupon handles DELETE /api/coupons/:id.
func (h *CouponHandler) DeleteCoupon(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id must be a valid UUID"})
	}

	if err := h.service.Delete(c.Context(), requestActor(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// RedeemCoupon handles POST /api/coupons/:id/redeem. The invoice flow calls
// this after the booking is committed; a redemption that would exceed the
// cap is rejected with 409 and the counter is left untouched.
func (h *CouponHandler) RedeemCoupon(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id must be a valid UUID"})
	}

	var req model.RedeemCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	rec, err := h.service.RecordRedemption(c.Context(), id, req.Amount)
	if err != nil {
		return respondServiceError(c, err)
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("coupon_id", id.String()).
		Str("code", rec.Code).
		Str("amount", rec.Amount.String()).
		Msg("coupon redeemed")

	return c.JSON(rec)
}
