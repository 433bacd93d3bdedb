package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
	"github.com/fairyhunter13/hotel-backoffice/pkg/database"
)

// RedemptionRepository provides access to the append-only usage log.
type RedemptionRepository struct {
	pool PoolInterface
}

// NewRedemptionRepository creates a new RedemptionRepository with the given pool.
func NewRedemptionRepository(pool *pgxpool.Pool) *RedemptionRepository {
	return &RedemptionRepository{pool: pool}
}

// NewRedemptionRepositoryWithPool creates a new RedemptionRepository with a custom pool interface.
// This is primarily used for testing.
func NewRedemptionRepositoryWithPool(pool PoolInterface) *RedemptionRepository {
	return &RedemptionRepository{pool: pool}
}

// Insert appends a redemption record within the transaction that also
// increments the coupon's counter.
func (r *RedemptionRepository) Insert(ctx context.Context, tx database.TxQuerier, rec *model.Redemption) error {
	query := `INSERT INTO redemptions (id, coupon_id, code, discount_id, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING redeemed_at`

	err := tx.QueryRow(ctx, query,
		rec.ID, rec.CouponID, rec.Code, rec.DiscountID, rec.Amount,
	).Scan(&rec.RedeemedAt)
	if err != nil {
		return fmt.Errorf("insert redemption: %w", err)
	}
	return nil
}

// AggregateUsage groups redemptions whose timestamp falls in [start, end]
// (either bound may be nil for an open-ended window) into report rows.
// On success, returns an empty slice (not nil) when no redemptions match.
func (r *RedemptionRepository) AggregateUsage(ctx context.Context, start, end *time.Time) ([]model.UsageRow, error) {
	query := `SELECT coupon_id, code, discount_id, COUNT(*), SUM(amount)
		FROM redemptions
		WHERE ($1::timestamptz IS NULL OR redeemed_at >= $1)
		  AND ($2::timestamptz IS NULL OR redeemed_at <= $2)
		GROUP BY coupon_id, code, discount_id
		ORDER BY COUNT(*) DESC, code ASC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("aggregate usage: %w", err)
	}
	defer rows.Close()

	report := []model.UsageRow{}
	for rows.Next() {
		var row model.UsageRow
		if err := rows.Scan(&row.CouponID, &row.Code, &row.DiscountID, &row.Redemptions, &row.TotalDiscountAmount); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage rows: %w", err)
	}
	return report, nil
}
