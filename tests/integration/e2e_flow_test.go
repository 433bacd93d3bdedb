//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullValidationFlow walks the complete back-office path: create an
// offer, scope a discount to it, attach a coupon code, validate a booking
// against the code, and record the redemption after the booking commits.
func TestFullValidationFlow(t *testing.T) {
	cleanupTables(t)

	offerID := createOffer(t, "Honeymoon Package")
	discountID := createDiscount(t, map[string]any{
		"offer_id": offerID,
		"kind":     "percentage",
		"value":    "10",
	})
	couponID := createCoupon(t, "HONEY10", discountID, 5)

	// Validation with the right offer context succeeds and computes 10%.
	resp, err := postJSON(formatURL("/api/validate"), map[string]any{
		"coupon_code":   "  honey10 ",
		"offer_id":      offerID,
		"booking_total": "200",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var verdict struct {
		Valid           bool   `json:"valid"`
		Reason          string `json:"reason"`
		AppliedDiscount *struct {
			ID             string          `json:"id"`
			ComputedAmount decimal.Decimal `json:"computed_amount"`
		} `json:"applied_discount"`
	}
	require.NoError(t, readJSONResponse(resp, &verdict))
	assert.True(t, verdict.Valid)
	require.NotNil(t, verdict.AppliedDiscount)
	assert.Equal(t, discountID, verdict.AppliedDiscount.ID)
	assert.True(t, decimal.NewFromInt(20).Equal(verdict.AppliedDiscount.ComputedAmount))

	// Validation in the wrong offer context is rejected with a reason,
	// still over HTTP 200.
	otherOffer := createOffer(t, "Spa Day")
	resp, err = postJSON(formatURL("/api/validate"), map[string]any{
		"coupon_code":   "HONEY10",
		"offer_id":      otherOffer,
		"booking_total": "200",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, readJSONResponse(resp, &verdict))
	assert.False(t, verdict.Valid)
	assert.Equal(t, "offer_mismatch", verdict.Reason)

	// Validation alone never consumes a use.
	count, logCount := getRedemptionState(t, couponID)
	assert.Equal(t, 0, count, "validation must not consume a redemption")
	assert.Equal(t, 0, logCount)

	// The invoice flow records the redemption after commit.
	resp, err = postJSON(formatURL("/api/coupons/"+couponID+"/redeem"), map[string]any{
		"amount": "20.00",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	count, logCount = getRedemptionState(t, couponID)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, logCount, "counter bump and usage log must move together")
}

// TestDeleteProtection verifies that deletions never cascade: an offer with
// discounts and a discount with coupon codes are both rejected with 409.
func TestDeleteProtection(t *testing.T) {
	cleanupTables(t)

	offerID := createOffer(t, "Winter Escape")
	discountID := createDiscount(t, map[string]any{
		"offer_id": offerID,
		"kind":     "fixed_amount",
		"value":    "50",
	})
	createCoupon(t, "WINTER50", discountID, 0)

	req, err := http.NewRequest("DELETE", formatURL("/api/offers/"+offerID), nil)
	require.NoError(t, err)
	req.Header.Set("X-Actor-Role", "admin")
	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "offer with discounts must not be deletable")

	req, err = http.NewRequest("DELETE", formatURL("/api/discounts/"+discountID), nil)
	require.NoError(t, err)
	req.Header.Set("X-Actor-Role", "admin")
	resp, err = httpClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "discount with coupon codes must not be deletable")
}

// TestStaffCannotMutateCatalog verifies the role gate on mutating routes.
func TestStaffCannotMutateCatalog(t *testing.T) {
	cleanupTables(t)

	resp, err := postJSONWithRole(formatURL("/api/offers"), map[string]any{"name": "Forbidden Offer"}, "staff")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
