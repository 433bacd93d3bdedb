package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
)

// ReportServiceInterface defines the interface for usage reporting.
type ReportServiceInterface interface {
	DiscountUsage(ctx context.Context, start, end *time.Time) ([]model.UsageRow, error)
}

// ReportHandler handles HTTP requests for reports.
type ReportHandler struct {
	service ReportServiceInterface
}

// NewReportHandler creates a new ReportHandler with the given service.
func NewReportHandler(svc ReportServiceInterface) *ReportHandler {
	return &ReportHandler{service: svc}
}

// DiscountUsage handles GET /api/reports/discount-usage?start_date&end_date.
// Bounds are RFC 3339 timestamps; either may be omitted for an open-ended
// window.
func (h *ReportHandler) DiscountUsage(c *fiber.Ctx) error {
	start, err := parseTimeQuery(c, "start_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: start_date must be RFC 3339"})
	}
	end, err := parseTimeQuery(c, "end_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: end_date must be RFC 3339"})
	}

	rows, err := h.service.DiscountUsage(c.Context(), start, end)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(rows)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
