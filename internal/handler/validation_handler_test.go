package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
	"github.com/fairyhunter13/hotel-backoffice/internal/service"
)

// mockValidationService is a mock implementation of ValidationServiceInterface.
type mockValidationService struct {
	validateFn func(ctx context.Context, req *model.ValidateRequest) (*model.ValidationResult, error)
}

func (m *mockValidationService) Validate(ctx context.Context, req *model.ValidateRequest) (*model.ValidationResult, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, req)
	}
	return &model.ValidationResult{Valid: false, Reason: service.ReasonCouponNotFound}, nil
}

func setupValidationApp(mockSvc *mockValidationService) *fiber.App {
	app := fiber.New()
	h := NewValidationHandler(mockSvc)
	app.Post("/api/validate", h.Validate)
	return app
}

func TestValidate_ValidVerdict(t *testing.T) {
	discountID := uuid.New()
	mockSvc := &mockValidationService{
		validateFn: func(ctx context.Context, req *model.ValidateRequest) (*model.ValidationResult, error) {
			require.NotNil(t, req.CouponCode)
			assert.Equal(t, "SUMMER10", *req.CouponCode)
			assert.True(t, decimal.NewFromInt(200).Equal(req.BookingTotal))
			return &model.ValidationResult{
				Valid: true,
				AppliedDiscount: &model.AppliedDiscount{
					ID:             discountID,
					Kind:           model.KindPercentage,
					Value:          decimal.NewFromInt(10),
					ComputedAmount: decimal.NewFromInt(20),
				},
			}, nil
		},
	}
	app := setupValidationApp(mockSvc)

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/validate", `{"coupon_code": "SUMMER10", "booking_total": "200"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result model.ValidationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Valid)
	require.NotNil(t, result.AppliedDiscount)
	assert.Equal(t, discountID, result.AppliedDiscount.ID)
	assert.True(t, decimal.NewFromInt(20).Equal(result.AppliedDiscount.ComputedAmount))
}

func TestValidate_InvalidVerdictIsStill200(t *testing.T) {
	mockSvc := &mockValidationService{
		validateFn: func(ctx context.Context, req *model.ValidateRequest) (*model.ValidationResult, error) {
			return &model.ValidationResult{Valid: false, Reason: service.ReasonCouponExpired}, nil
		},
	}
	app := setupValidationApp(mockSvc)

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/validate", `{"coupon_code": "OLD", "booking_total": "100"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "a business rejection is a verdict, not an HTTP error")

	var result model.ValidationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Valid)
	assert.Equal(t, service.ReasonCouponExpired, result.Reason)
	assert.Nil(t, result.AppliedDiscount)
}

func TestValidate_AmbiguousRequest(t *testing.T) {
	mockSvc := &mockValidationService{
		validateFn: func(ctx context.Context, req *model.ValidateRequest) (*model.ValidationResult, error) {
			return nil, &service.FieldError{Field: "coupon_code", Message: "exactly one of coupon_code or discount_id must be provided"}
		},
	}
	app := setupValidationApp(mockSvc)

	body := `{"coupon_code": "SUMMER10", "discount_id": "` + uuid.New().String() + `", "booking_total": "100"}`
	resp, err := app.Test(adminRequest(http.MethodPost, "/api/validate", body))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "coupon_code", result["field"])
}

func TestValidate_StoreFailure(t *testing.T) {
	mockSvc := &mockValidationService{
		validateFn: func(ctx context.Context, req *model.ValidateRequest) (*model.ValidationResult, error) {
			return nil, errors.New("connection refused")
		},
	}
	app := setupValidationApp(mockSvc)

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/validate", `{"coupon_code": "SUMMER10", "booking_total": "100"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode, "store failures must never come back as verdicts")

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "internal server error", result["error"])
}

func TestValidate_MalformedBody(t *testing.T) {
	app := setupValidationApp(&mockValidationService{})

	resp, err := app.Test(adminRequest(http.MethodPost, "/api/validate", `{not json`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
