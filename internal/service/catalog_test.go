package service

import (
	"context"
	"testing"

	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Catalog CRUD, registration status changes and paid confirmations all
// invalidate through the same helper; this pins the key set it drops.
func TestListingResources(t *testing.T) {
	assert.Equal(t, []string{"events", "catalog"}, listingResources(domain.ItemTypeEvent))
	assert.Equal(t, []string{"courses", "catalog"}, listingResources(domain.ItemTypeCourse))
	assert.Equal(t, []string{"competitions", "catalog"}, listingResources(domain.ItemTypeCompetition))
}

func TestListingResource(t *testing.T) {
	itemType := domain.ItemTypeCourse
	assert.Equal(t, "courses", listingResource(&repository.CatalogFilters{Type: &itemType}))
	assert.Equal(t, "catalog", listingResource(&repository.CatalogFilters{}))
	assert.Equal(t, "catalog", listingResource(nil))
}

func TestCatalogCreateDefaults(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := newCatalogService(repo, nil)

	item := &domain.CatalogItem{
		Type:            domain.ItemTypeEvent,
		Title:           "Summer Camp",
		MaxParticipants: 30,
	}
	require.NoError(t, svc.Create(context.Background(), item))

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, domain.ItemActive, item.Status)
	assert.False(t, item.CreatedAt.IsZero())
}

func TestCatalogCreateUnknownType(t *testing.T) {
	svc := newCatalogService(newFakeCatalogRepo(), nil)

	err := svc.Create(context.Background(), &domain.CatalogItem{Type: "meetup", Title: "x"})
	assert.ErrorIs(t, err, domain.ErrBadInput)
}

func TestCatalogGetAllWithoutCache(t *testing.T) {
	item := paidItem(50000, 30, 12)
	svc := newCatalogService(newFakeCatalogRepo(item), nil)

	items, total, err := svc.GetAll(context.Background(), 1, 10, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, item.Title, items[0].Title)
}

func TestCatalogDeleteUnknown(t *testing.T) {
	svc := newCatalogService(newFakeCatalogRepo(), nil)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
