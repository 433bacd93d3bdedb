package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fairyhunter13/hotel-backoffice/internal/model"
)

// OfferRepositoryInterface defines the interface for offer data access.
type OfferRepositoryInterface interface {
	Insert(ctx context.Context, offer *model.Offer) error
	List(ctx context.Context) ([]model.Offer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Offer, error)
	Update(ctx context.Context, offer *model.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OfferService provides business logic for the offer catalog.
type OfferService struct {
	repo OfferRepositoryInterface
}

// NewOfferService creates a new OfferService with the given repository.
func NewOfferService(repo OfferRepositoryInterface) *OfferService {
	return &OfferService{repo: repo}
}

// Create creates a new offer.
// Returns ErrForbidden when the actor may not manage the catalog and a
// FieldError when the name is blank.
func (s *OfferService) Create(ctx context.Context, actor model.Actor, req *model.CreateOfferRequest) (*model.Offer, error) {
	if !actor.CanManageCatalog() {
		return nil, ErrForbidden
	}
	// Defense-in-depth: check even though handler validates
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fieldErr("name", "must not be empty")
	}

	offer := &model.Offer{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if req.DisplayOrder != nil {
		offer.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.Insert(ctx, offer); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return offer, nil
}

// List returns all offers ascending by display order.
func (s *OfferService) List(ctx context.Context) ([]model.Offer, error) {
	offers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return offers, nil
}

// Get retrieves an offer by id.
// Returns ErrOfferNotFound if the offer doesn't exist.
func (s *OfferService) Get(ctx context.Context, id uuid.UUID) (*model.Offer, error) {
	offer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	return offer, nil
}

// Update applies a patch to an offer. Nil patch fields are left unchanged.
// Returns ErrOfferNotFound if the offer doesn't exist and a FieldError when
// the patched name is blank.
func (s *OfferService) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateOfferRequest) (*model.Offer, error) {
	if !actor.CanManageCatalog() {
		return nil, ErrForbidden
	}
	if req == nil {
		return nil, ErrInvalidRequest
	}

	offer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fieldErr("name", "must not be empty")
		}
		offer.Name = *req.Name
	}
	if req.Description != nil {
		offer.Description = req.Description
	}
	if req.DisplayOrder != nil {
		offer.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Delete removes an offer.
// Returns ErrOfferInUse when discounts still reference it; deletion never
// cascades to dependents.
func (s *OfferService) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if !actor.CanManageCatalog() {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
