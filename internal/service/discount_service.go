package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
)

var oneHundred = decimal.NewFromInt(100)

// DiscountRepositoryInterface defines the interface for discount data access.
type DiscountRepositoryInterface interface {
	Insert(ctx context.Context, d *model.Discount) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Discount, error)
	List(ctx context.Context, filter model.DiscountFilter, now time.Time) ([]model.Discount, error)
	Update(ctx context.Context, d *model.Discount) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DiscountService provides business logic for the discount registry. It owns
// referential integrity towards the offer catalog at write time.
type DiscountService struct {
	repo   DiscountRepositoryInterface
	offers OfferRepositoryInterface
	now    func() time.Time
}

// NewDiscountService creates a new DiscountService with the given repositories.
func NewDiscountService(repo DiscountRepositoryInterface, offers OfferRepositoryInterface) *DiscountService {
	return &DiscountService{repo: repo, offers: offers, now: time.Now}
}

// checkInvariants validates the field invariants of an assembled discount.
// Failures name the violated field.
func checkInvariants(d *model.Discount) *FieldError {
	switch d.Kind {
	case model.KindPercentage:
		if !d.Value.IsPositive() || d.Value.GreaterThan(oneHundred) {
			return fieldErr("value", "percentage must be greater than 0 and at most 100")
		}
	case model.KindFixedAmount:
		if !d.Value.IsPositive() {
			return fieldErr("value", "must be greater than 0")
		}
	default:
		return fieldErr("kind", "must be percentage or fixed_amount")
	}
	if d.StartDate != nil && d.EndDate != nil && d.StartDate.After(*d.EndDate) {
		return fieldErr("start_date", "must not be after end_date")
	}
	if d.MaxUsesTotal != nil && *d.MaxUsesTotal < 1 {
		return fieldErr("max_uses_total", "must be at least 1")
	}
	if d.MaxUsesPerBooking != nil && *d.MaxUsesPerBooking < 1 {
		return fieldErr("max_uses_per_booking", "must be at least 1")
	}
	return nil
}

// Create creates a new discount after validating every invariant.
// An offer_id that does not reference an existing offer is a FieldError.
func (s *DiscountService) Create(ctx context.Context, actor model.Actor, req *model.CreateDiscountRequest) (*model.Discount, error) {
	if !actor.CanManageCatalog() {
		return nil, ErrForbidden
	}
	if req == nil {
		return nil, ErrInvalidRequest
	}

	d := &model.Discount{
		ID:                uuid.New(),
		Kind:              model.DiscountKind(req.Kind),
		Value:             req.Value,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsActive:          true,
		MaxUsesTotal:      req.MaxUsesTotal,
		MaxUsesPerBooking: req.MaxUsesPerBooking,
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	if req.OfferID != nil {
		offerID, err := uuid.Parse(*req.OfferID)
		if err != nil {
			return nil, fieldErr("offer_id", "must be a valid UUID")
		}
		offer, err := s.offers.GetByID(ctx, offerID)
		if err != nil {
			return nil, fmt.Errorf("check offer: %w", err)
		}
		if offer == nil {
			return nil, fieldErr("offer_id", "offer does not exist")
		}
		d.OfferID = &offerID
	}

	if ferr := checkInvariants(d); ferr != nil {
		return nil, ferr
	}

	if err := s.repo.Insert(ctx, d); err != nil {
		return nil, fmt.Errorf("create discount: %w", err)
	}
	return d, nil
}

// Get retrieves a discount by id.
// Returns ErrDiscountNotFound if the discount doesn't exist.
func (s *DiscountService) Get(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get discount: %w", err)
	}
	if d == nil {
		return nil, ErrDiscountNotFound
	}
	return d, nil
}

// List returns discounts matching the filter. The default filter excludes
// inactive rows and rows whose end date has passed; IncludeInactive is for
// admin management views, not for validation.
func (s *DiscountService) List(ctx context.Context, filter model.DiscountFilter) ([]model.Discount, error) {
	discounts, err := s.repo.List(ctx, filter, s.now())
	if err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}
	return discounts, nil
}

// Update applies a patch to a discount and re-validates the merged row.
// Nil patch fields are left unchanged. The offer scope is fixed at creation.
func (s *DiscountService) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateDiscountRequest) (*model.Discount, error) {
	if !actor.CanManageCatalog() {
		return nil, ErrForbidden
	}
	if req == nil {
		return nil, ErrInvalidRequest
	}

	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Kind != nil {
		d.Kind = model.DiscountKind(*req.Kind)
	}
	if req.Value != nil {
		d.Value = *req.Value
	}
	if req.StartDate != nil {
		d.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		d.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	if req.MaxUsesTotal != nil {
		d.MaxUsesTotal = req.MaxUsesTotal
	}
	if req.MaxUsesPerBooking != nil {
		d.MaxUsesPerBooking = req.MaxUsesPerBooking
	}

	if ferr := checkInvariants(d); ferr != nil {
		return nil, ferr
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a discount.
// Returns ErrDiscountInUse when coupon codes still reference it.
func (s *DiscountService) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if !actor.CanManageCatalog() {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
