package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
	"github.com/fairyhunter13/hotel-backoffice/pkg/database"
)

// CouponRepositoryInterface defines the interface for coupon code data access.
type CouponRepositoryInterface interface {
	Insert(ctx context.Context, c *model.CouponCode) error
	FindByCode(ctx context.Context, code string) (*model.CouponCode, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CouponCode, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementRedemption(ctx context.Context, tx database.TxQuerier, id uuid.UUID) (uuid.UUID, string, error)
}

// RedemptionRepositoryInterface defines the interface for the usage log.
type RedemptionRepositoryInterface interface {
	Insert(ctx context.Context, tx database.TxQuerier, rec *model.Redemption) error
}

// TxBeginner defines the interface for beginning transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CouponService provides business logic for coupon code operations.
type CouponService struct {
	pool        TxBeginner
	coupons     CouponRepositoryInterface
	discounts   DiscountRepositoryInterface
	redemptions RedemptionRepositoryInterface
}

// NewCouponService creates a new CouponService with the given pool and repositories.
func NewCouponService(pool *pgxpool.Pool, coupons CouponRepositoryInterface, discounts DiscountRepositoryInterface, redemptions RedemptionRepositoryInterface) *CouponService {
	return &CouponService{pool: pool, coupons: coupons, discounts: discounts, redemptions: redemptions}
}

// NewCouponServiceWithTxBeginner creates a CouponService with a custom TxBeginner.
// Primarily used for testing.
func NewCouponServiceWithTxBeginner(pool TxBeginner, coupons CouponRepositoryInterface, discounts DiscountRepositoryInterface, redemptions RedemptionRepositoryInterface) *CouponService {
	return &CouponService{pool: pool, coupons: coupons, discounts: discounts, redemptions: redemptions}
}

// Create creates a new coupon code bound to an existing discount. The code
// is normalized (trimmed, uppercased) before the uniqueness check.
// Returns ErrCouponExists when the normalized code is taken and
// ErrDiscountNotFound when the discount is absent.
func (s *CouponService) Create(ctx context.Context, actor model.Actor, req *model.CreateCouponRequest) (*model.CouponCode, error) {
	if !actor.CanManageCatalog() {
		return nil, ErrForbidden
	}
	if req == nil {
		return nil, ErrInvalidRequest
	}

	code := model.NormalizeCode(req.Code)
	if code == "" {
		return nil, fieldErr("code", "must not be empty")
	}
	discountID, err := uuid.Parse(req.DiscountID)
	if err != nil {
		return nil, fieldErr("discount_id", "must be a valid UUID")
	}
	if req.MaxRedemptions != nil && *req.MaxRedemptions < 1 {
		return nil, fieldErr("max_redemptions", "must be at least 1")
	}

	discount, err := s.discounts.GetByID(ctx, discountID)
	if err != nil {
		return nil, fmt.Errorf("check discount: %w", err)
	}
	if discount == nil {
		return nil, ErrDiscountNotFound
	}

	coupon := &model.CouponCode{
		ID:             uuid.New(),
		Code:           code,
		DiscountID:     discountID,
		MaxRedemptions: req.MaxRedemptions,
		ExpiresAt:      req.ExpiresAt,
		IsActive:       true,
	}
	if err := s.coupons.Insert(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// FindByCode looks up a coupon by code, case- and whitespace-insensitively.
// Returns ErrCouponNotFound when no coupon matches.
func (s *CouponService) FindByCode(ctx context.Context, code string) (*model.CouponCode, error) {
	coupon, err := s.coupons.FindByCode(ctx, model.NormalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("find coupon: %w", err)
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// Get retrieves a coupon by id.
// Returns ErrCouponNotFound if the coupon doesn't exist.
func (s *CouponService) Get(ctx context.Context, id uuid.UUID) (*model.CouponCode, error) {
	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// Delete removes a coupon code.
func (s *CouponService) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if !actor.CanManageCatalog() {
		return ErrForbidden
	}
	return s.coupons.Delete(ctx, id)
}

// RecordRedemption consumes one use of a coupon and appends the usage log
// record in the same transaction. The counter bump is a single conditional
// update (increment where count < max), so two concurrent redemptions can
// never both pass a stale count check. Amount is the discount the committed
// booking applied; the invoice flow calls this only after commit.
// Returns:
//   - ErrCouponNotFound if the coupon doesn't exist
//   - ErrCouponInactive if the coupon has been deactivated
//   - ErrCouponExhausted if the redemption cap is already reached
func (s *CouponService) RecordRedemption(ctx context.Context, couponID uuid.UUID, amount decimal.Decimal) (*model.Redemption, error) {
	if amount.IsNegative() {
		return nil, fieldErr("amount", "must not be negative")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	discountID, code, err := s.coupons.IncrementRedemption(ctx, tx, couponID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conditional update matched nothing; inspect the row to
			// report why.
			return nil, s.classifyRedemptionFailure(ctx, couponID)
		}
		return nil, fmt.Errorf("increment redemption: %w", err)
	}

	rec := &model.Redemption{
		ID:         uuid.New(),
		CouponID:   couponID,
		Code:       code,
		DiscountID: discountID,
		Amount:     amount,
	}
	if err := s.redemptions.Insert(ctx, tx, rec); err != nil {
		return nil, fmt.Errorf("log redemption: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return rec, nil
}

func (s *CouponService) classifyRedemptionFailure(ctx context.Context, couponID uuid.UUID) error {
	coupon, err := s.coupons.GetByID(ctx, couponID)
	if err != nil {
		return fmt.Errorf("inspect coupon: %w", err)
	}
	switch {
	case coupon == nil:
		return ErrCouponNotFound
	case !coupon.IsActive:
		return ErrCouponInactive
	default:
		return ErrCouponExhausted
	}
}
