package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
	"github.com/fairyhunter13/hotel-backoffice/internal/service"
	"github.com/fairyhunter13/hotel-backoffice/pkg/database"
)

const couponColumns = `id, code, discount_id, max_redemptions, redemption_count,
	expires_at, is_active, created_at`

// CouponRepository provides data access for coupon codes using pgx.
// Callers must pass codes already normalized via model.NormalizeCode.
type CouponRepository struct {
	pool PoolInterface
}

// NewCouponRepository creates a new CouponRepository with the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// NewCouponRepositoryWithPool creates a new CouponRepository with a custom pool interface.
// This is primarily used for testing.
func NewCouponRepositoryWithPool(pool PoolInterface) *CouponRepository {
	return &CouponRepository{pool: pool}
}

func scanCoupon(row pgx.Row) (*model.CouponCode, error) {
	var c model.CouponCode
	err := row.Scan(
		&c.ID, &c.Code, &c.DiscountID, &c.MaxRedemptions, &c.RedemptionCount,
		&c.ExpiresAt, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert inserts a new coupon code.
// Returns service.ErrCouponExists when the normalized code is already taken
// and service.ErrDiscountNotFound when the referenced discount is absent.
func (r *CouponRepository) Insert(ctx context.Context, c *model.CouponCode) error {
	query := `INSERT INTO coupon_codes
		(id, code, discount_id, max_redemptions, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		c.ID, c.Code, c.DiscountID, c.MaxRedemptions, c.ExpiresAt, c.IsActive,
	).Scan(&c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return service.ErrCouponExists
			case pgForeignKeyViolation:
				return service.ErrDiscountNotFound
			}
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// FindByCode retrieves a coupon by its normalized code.
// Returns nil, nil if no coupon matches (service layer handles this).
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*model.CouponCode, error) {
	query := `SELECT ` + couponColumns + ` FROM coupon_codes WHERE code = $1`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("find coupon by code %s: %w", code, err)
	}
	return c, nil
}

// GetByID retrieves a coupon by its id.
// Returns nil, nil if the coupon is not found (service layer handles this).
func (r *CouponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CouponCode, error) {
	query := `SELECT ` + couponColumns + ` FROM coupon_codes WHERE id = $1`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon %s: %w", id, err)
	}
	return c, nil
}

// Delete removes a coupon code.
// Returns service.ErrCouponNotFound if no row matches.
func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupon_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// IncrementRedemption bumps redemption_count by one as a single conditional
// update: the row must be active and below its cap, otherwise no row is
// touched. This closes the race where two concurrent redemptions both pass a
// stale count check. Returns the coupon's discount id and code on success
// and pgx.ErrNoRows when the condition did not hold (caller distinguishes
// why via GetByID).
func (r *CouponRepository) IncrementRedemption(ctx context.Context, tx database.TxQuerier, id uuid.UUID) (uuid.UUID, string, error) {
	query := `UPDATE coupon_codes
		SET redemption_count = redemption_count + 1
		WHERE id = $1
		  AND is_active
		  AND (max_redemptions IS NULL OR redemption_count < max_redemptions)
		RETURNING discount_id, code`

	var discountID uuid.UUID
	var code string
	if err := tx.QueryRow(ctx, query, id).Scan(&discountID, &code); err != nil {
		return uuid.Nil, "", err
	}
	return discountID, code, nil
}
