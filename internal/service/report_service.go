package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
)

// RedemptionAggregator is the read side of the usage log.
type RedemptionAggregator interface {
	AggregateUsage(ctx context.Context, start, end *time.Time) ([]model.UsageRow, error)
}

// ReportService aggregates historical redemption records into usage reports.
type ReportService struct {
	redemptions RedemptionAggregator
}

// NewReportService creates a new ReportService with the given aggregator.
func NewReportService(redemptions RedemptionAggregator) *ReportService {
	return &ReportService{redemptions: redemptions}
}

// DiscountUsage returns one row per coupon redeemed inside [start, end];
// either bound may be nil for an open-ended window. An empty window yields
// an empty slice, not an error.
func (s *ReportService) DiscountUsage(ctx context.Context, start, end *time.Time) ([]model.UsageRow, error) {
	if start != nil && end != nil && start.After(*end) {
		return nil, fieldErr("start_date", "must not be after end_date")
	}

	rows, err := s.redemptions.AggregateUsage(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("aggregate usage: %w", err)
	}
	return rows, nil
}
