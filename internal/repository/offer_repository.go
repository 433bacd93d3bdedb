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
)

// OfferRepository provides data access for offers using pgx.
type OfferRepository struct {
	pool PoolInterface
}

// NewOfferRepository creates a new OfferRepository with the given pool.
func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

// NewOfferRepositoryWithPool creates a new OfferRepository with a custom pool interface.
// This is primarily used for testing.
func NewOfferRepositoryWithPool(pool PoolInterface) *OfferRepository {
	return &OfferRepository{pool: pool}
}

// Insert inserts a new offer and reads back the store-assigned timestamps.
func (r *OfferRepository) Insert(ctx context.Context, offer *model.Offer) error {
	query := `INSERT INTO offers (id, name, description, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		offer.ID, offer.Name, offer.Description, offer.DisplayOrder,
	).Scan(&offer.CreatedAt, &offer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

// List returns all offers ascending by display_order, ties broken by created_at.
// On success, returns an empty slice (not nil) when no offers exist.
func (r *OfferRepository) List(ctx context.Context) ([]model.Offer, error) {
	query := `SELECT id, name, description, display_order, created_at, updated_at
		FROM offers
		ORDER BY display_order ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	offers := []model.Offer{}
	for rows.Next() {
		var o model.Offer
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.DisplayOrder, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offer rows: %w", err)
	}
	return offers, nil
}

// GetByID retrieves an offer by its id.
// Returns nil, nil if the offer is not found (service layer handles this).
func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Offer, error) {
	query := `SELECT id, name, description, display_order, created_at, updated_at
		FROM offers WHERE id = $1`

	var o model.Offer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.Description, &o.DisplayOrder, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get offer %s: %w", id, err)
	}
	return &o, nil
}

// Update overwrites the mutable columns of an offer and bumps updated_at.
// Returns service.ErrOfferNotFound if no row matches.
func (r *OfferRepository) Update(ctx context.Context, offer *model.Offer) error {
	query := `UPDATE offers
		SET name = $2, description = $3, display_order = $4, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		offer.ID, offer.Name, offer.Description, offer.DisplayOrder)
	if err != nil {
		return fmt.Errorf("update offer %s: %w", offer.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrOfferNotFound
	}
	return nil
}

// Delete removes an offer.
// Returns service.ErrOfferInUse if discounts still reference it (FK RESTRICT)
// and service.ErrOfferNotFound if no row matches.
func (r *OfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return service.ErrOfferInUse
		}
		return fmt.Errorf("delete offer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrOfferNotFound
	}
	return nil
}
