package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
	"github.com/fairyhunter13/hotel-backoffice/internal/service"
	"github.com/fairyhunter13/hotel-backoffice/internal/validator"
)

// mockCouponService is a mock implementation of CouponServiceInterface.
type mockCouponService struct {
	createFn           func(ctx context.Context, actor model.Actor, req *model.CreateCouponRequest) (*model.CouponCode, error)
	findByCodeFn       func(ctx context.Context, code string) (*model.CouponCode, error)
	getFn              func(ctx context.Context, id uuid.UUID) (*model.CouponCode, error)
	deleteFn           func(ctx context.Context, actor model.Actor, id uuid.UUID) error
	recordRedemptionFn func(ctx context.Context, couponID uuid.UUID, amount decimal.Decimal) (*model.Redemption, error)
}

func (m *mockCouponService) Create(ctx context.Context, actor model.Actor, req *model.CreateCouponRequest) (*model.CouponCode, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, req)
	}
	return &model.CouponCode{ID: uuid.New(), Code: model.NormalizeCode(req.Code)}, nil
}

func (m *mockCouponService) FindByCode(ctx context.Context, code string) (*model.CouponCode, error) {
	if m.findByCodeFn != nil {
		return m.findByCodeFn(ctx, code)
	}
	return nil, service.ErrCouponNotFound
}

func (m *mockCouponService) Get(ctx context.Context, id uuid.UUID) (*model.CouponCode, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, service.ErrCouponNotFound
}

func (m *mockCouponService) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, actor, id)
	}
	return nil
}

func (m *mockCouponService) RecordRedemption(ctx context.Context, couponID uuid.UUID, amount decimal.Decimal) (*model.Redemption, error) {
	if m.recordRedemptionFn != nil {
		return m.recordRedemptionFn(ctx, couponID, amount)
	}
	return &model.Redemption{ID: uuid.New(), CouponID: couponID, Amount: amount}, nil
}

func setupCouponApp(mockSvc *mockCouponService) *fiber.App {
	app := fiber.New()
	app.Use(ActorMiddleware())
	h := NewCouponHandler(mockSvc, validator.New())
	app.Post("/api/coupons/lookup", h.LookupCoupon)
	app.Post("/api/coupons", h.CreateCoupon)
	app.Get("/api/coupons/:id", h.GetCoupon)
	app.Delete("/api/coupons/:id", h.DeleteCoupon)
	app.Post("/api/coupons/:id/redeem", h.RedeemCoupon)
	return app
}

func TestCreateCoupon_Success(t *testing.T) {
	discountID := uuid.New()
	mockSvc := &mockCouponService{
		createFn: func(ctx context.Context, actor model.Actor, req *model.CreateCouponRequest) (*model.CouponCode, error) {
			return &model.CouponCode{
				ID:         uuid.New(),
				Code:       model.NormalizeCode(req.Code),
				DiscountID: discountID,
				IsActive:   true,
			}, nil
		},
	}
	app := setupCouponApp(mockSvc)

	body := `{"code": "summer10", "discount_id": "` + discountID.String() + `"}`
	resp, err := app.Test(adminRequest(http.MethodPost, "/api/coupons", body))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, "Expected 201 Created")

	var coupon model.CouponCode
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&coupon))
	assert.Equal(t, "SUMMER10", coupon.Code, "response carries the normalized code")
}

func TestCreateCoupon_MissingCode(t *testing.T) {
	app := setupCouponApp(&mockCouponService{})

	body := `{"discount_id": "` + uuid.New().String() + `"}`
	resp, err := app.Test(adminRequest(http.MethodPost, "/api/coupons", body))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "invalid request: code is required", result["error"], "Exact error message required")
}

func TestCreateCoupon_InvalidDiscountID(t *testing.T) {
	app := setupCouponApp(&mockCouponService{})

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/coupons", `{"code": "SUMMER10", "discount_id": "nope"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateCoupon_DuplicateCode(t *testing.T) {
	mockSvc := &mockCouponService{
		createFn: func(ctx context.Context, actor model.Actor, req *model.CreateCouponRequest) (*model.CouponCode, error) {
			return nil, service.ErrCouponExists
		},
	}
	app := setupCouponApp(mockSvc)

	body := `{"code": "SUMMER10", "discount_id": "` + uuid.New().String() + `"}`
	resp, err := app.Test(adminRequest(http.MethodPost, "/api/coupons", body))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "duplicate normalized code is a conflict")
}

func TestLookupCoupon_Success(t *testing.T) {
	var lookedUp string
	mockSvc := &mockCouponService{
		findByCodeFn: func(ctx context.Context, code string) (*model.CouponCode, error) {
			lookedUp = code
			return &model.CouponCode{ID: uuid.New(), Code: "SUMMER10", IsActive: true}, nil
		},
	}
	app := setupCouponApp(mockSvc)

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/coupons/lookup", `{"code": "  summer10 "}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "  summer10 ", lookedUp, "normalization belongs to the service, not the handler")

	var coupon model.CouponCode
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&coupon))
	assert.Equal(t, "SUMMER10", coupon.Code)
}

func TestLookupCoupon_UnknownCode(t *testing.T) {
	app := setupCouponApp(&mockCouponService{})

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/coupons/lookup", `{"code": "NOPE"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "an unknown code is 404, not a system failure")
}

func TestLookupCoupon_BlankCode(t *testing.T) {
	app := setupCouponApp(&mockCouponService{})

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/coupons/lookup", `{"code": "   "}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "invalid request: code cannot be whitespace only", result["error"], "Exact error message required")
}

func TestRedeemCoupon_Success(t *testing.T) {
	couponID := uuid.New()
	mockSvc := &mockCouponService{
		recordRedemptionFn: func(ctx context.Context, gotID uuid.UUID, amount decimal.Decimal) (*model.Redemption, error) {
			assert.Equal(t, couponID, gotID)
			assert.True(t, decimal.NewFromFloat(42.50).Equal(amount))
			return &model.Redemption{ID: uuid.New(), CouponID: gotID, Code: "SUMMER10", Amount: amount}, nil
		},
	}
	app := setupCouponApp(mockSvc)

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/coupons/"+couponID.String()+"/redeem", `{"amount": "42.50"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rec model.Redemption
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "SUMMER10", rec.Code)
}

func TestRedeemCoupon_Exhausted(t *testing.T) {
	mockSvc := &mockCouponService{
		recordRedemptionFn: func(ctx context.Context, couponID uuid.UUID, amount decimal.Decimal) (*model.Redemption, error) {
			return nil, service.ErrCouponExhausted
		},
	}
	app := setupCouponApp(mockSvc)

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/coupons/"+uuid.New().String()+"/redeem", `{"amount": "10"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "exceeding the cap must not be a 500")
}

func TestRedeemCoupon_InvalidID(t *testing.T) {
	app := setupCouponApp(&mockCouponService{})

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/coupons/not-a-uuid/redeem", `{"amount": "10"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteCoupon_Success(t *testing.T) {
	app := setupCouponApp(&mockCouponService{})

	resp, err := app.Test(adminRequest(http.MethodDelete, "/api/coupons/"+uuid.New().String(), ""))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
