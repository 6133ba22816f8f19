package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/communityhub/backend/internal/cache"
	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/repository"

	"github.com/google/uuid"
)

type catalogService struct {
	repo  repository.CatalogRepository
	cache *cache.Store
}

func newCatalogService(repo repository.CatalogRepository, store *cache.Store) *catalogService {
	return &catalogService{
		repo:  repo,
		cache: store,
	}
}

// catalogListing is the cached shape of one listing page.
type catalogListing struct {
	Items []*domain.CatalogItem `json:"items"`
	Total int64                 `json:"total"`
}

func (s *catalogService) GetAll(ctx context.Context, page, limit int, filters *repository.CatalogFilters) ([]*domain.CatalogItem, int64, error) {
	page, limit = clampPage(page, limit)
	offset := (page - 1) * limit

	fetch := func(ctx context.Context) (*catalogListing, error) {
		items, err := s.repo.GetAll(ctx, limit, offset, filters)
		if err != nil {
			return nil, err
		}
		total, err := s.repo.Count(ctx, filters)
		if err != nil {
			return nil, err
		}
		return &catalogListing{Items: items, Total: total}, nil
	}

	if s.cache == nil {
		listing, err := fetch(ctx)
		if err != nil {
			return nil, 0, err
		}
		return listing.Items, listing.Total, nil
	}

	params := fmt.Sprintf("%s:p%d:l%d", filters.CacheKey(), page, limit)
	payload, err := s.cache.GetOrFetch(ctx, listingResource(filters), params, func(ctx context.Context) ([]byte, error) {
		listing, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return cache.MarshalListing(listing)
	})
	if err != nil {
		return nil, 0, err
	}

	var listing catalogListing
	if err := json.Unmarshal(payload, &listing); err != nil {
		return nil, 0, fmt.Errorf("decode cached listing: %w", err)
	}
	return listing.Items, listing.Total, nil
}

// listingResource scopes cache keys per item type so confirming an event
// seat does not evict course listings.
func listingResource(filters *repository.CatalogFilters) string {
	if filters != nil && filters.Type != nil {
		return string(*filters.Type) + "s"
	}
	return "catalog"
}

func (s *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *catalogService) Create(ctx context.Context, item *domain.CatalogItem) error {
	if !item.Type.Valid() {
		return fmt.Errorf("%w: unknown item type %q", domain.ErrBadInput, item.Type)
	}

	now := time.Now()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Status == "" {
		item.Status = domain.ItemActive
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}

	s.invalidate(ctx, item.Type)
	return nil
}

func (s *catalogService) Update(ctx context.Context, item *domain.CatalogItem) error {
	item.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, item); err != nil {
		return err
	}

	s.invalidate(ctx, item.Type)
	return nil
}

func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, item.Type)
	return nil
}

func (s *catalogService) invalidate(ctx context.Context, itemType domain.ItemType) {
	invalidateListings(ctx, s.cache, itemType)
}

// listingResources names every cache resource a mutation on itemType can
// stale: the type's own listings and the unfiltered catalog view.
func listingResources(itemType domain.ItemType) []string {
	return []string{string(itemType) + "s", "catalog"}
}

// invalidateListings is the single invalidation path for catalog-affecting
// mutations; catalog CRUD, registration status changes and paid
// confirmations all go through it.
func invalidateListings(ctx context.Context, store *cache.Store, itemType domain.ItemType) {
	if store == nil {
		return
	}
	for _, resource := range listingResources(itemType) {
		store.Invalidate(ctx, resource)
	}
}
