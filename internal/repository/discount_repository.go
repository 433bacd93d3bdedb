package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
	"github.com/fairyhunter13/hotel-backoffice/internal/service"
)

const discountColumns = `id, offer_id, kind, value, start_date, end_date, is_active,
	max_uses_total, max_uses_per_booking, created_at, updated_at`

// DiscountRepository provides data access for discounts using pgx.
type DiscountRepository struct {
	pool PoolInterface
}

// NewDiscountRepository creates a new DiscountRepository with the given pool.
func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

// NewDiscountRepositoryWithPool creates a new DiscountRepository with a custom pool interface.
// This is primarily used for testing.
func NewDiscountRepositoryWithPool(pool PoolInterface) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

func scanDiscount(row pgx.Row) (*model.Discount, error) {
	var d model.Discount
	err := row.Scan(
		&d.ID, &d.OfferID, &d.Kind, &d.Value, &d.StartDate, &d.EndDate, &d.IsActive,
		&d.MaxUsesTotal, &d.MaxUsesPerBooking, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Insert inserts a new discount and reads back the store-assigned timestamps.
func (r *DiscountRepository) Insert(ctx context.Context, d *model.Discount) error {
	query := `INSERT INTO discounts
		(id, offer_id, kind, value, start_date, end_date, is_active, max_uses_total, max_uses_per_booking)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		d.ID, d.OfferID, d.Kind, d.Value, d.StartDate, d.EndDate, d.IsActive,
		d.MaxUsesTotal, d.MaxUsesPerBooking,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return service.ErrOfferNotFound
		}
		return fmt.Errorf("insert discount: %w", err)
	}
	return nil
}

// GetByID retrieves a discount by its id.
// Returns nil, nil if the discount is not found (service layer handles this).
func (r *DiscountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = $1`

	d, err := scanDiscount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get discount %s: %w", id, err)
	}
	return d, nil
}

// List returns discounts matching the filter, oldest first. With
// IncludeInactive false it excludes inactive rows and rows whose end_date
// is already behind now.
func (r *DiscountRepository) List(ctx context.Context, filter model.DiscountFilter, now time.Time) ([]model.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts
		WHERE ($1 OR (is_active AND (end_date IS NULL OR end_date >= $2)))
		  AND ($3::uuid IS NULL OR offer_id = $3)
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, filter.IncludeInactive, now, filter.OfferID)
	if err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}
	defer rows.Close()

	discounts := []model.Discount{}
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		discounts = append(discounts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discount rows: %w", err)
	}
	return discounts, nil
}

// Update overwrites the mutable columns of a discount and bumps updated_at.
// Returns service.ErrDiscountNotFound if no row matches.
func (r *DiscountRepository) Update(ctx context.Context, d *model.Discount) error {
	query := `UPDATE discounts
		SET kind = $2, value = $3, start_date = $4, end_date = $5, is_active = $6,
		    max_uses_total = $7, max_uses_per_booking = $8, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		d.ID, d.Kind, d.Value, d.StartDate, d.EndDate, d.IsActive,
		d.MaxUsesTotal, d.MaxUsesPerBooking)
	if err != nil {
		return fmt.Errorf("update discount %s: %w", d.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrDiscountNotFound
	}
	return nil
}

// Delete removes a discount.
// Returns service.ErrDiscountInUse if coupon codes still reference it
// (FK RESTRICT) and service.ErrDiscountNotFound if no row matches.
func (r *DiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return service.ErrDiscountInUse
		}
		return fmt.Errorf("delete discount %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrDiscountNotFound
	}
	return nil
}
