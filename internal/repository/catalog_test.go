package repository

import (
	"context"
	"testing"
	"time"

	"github.com/communityhub/backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveSeat(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newCatalogRepository(db)
	id := uuid.New()

	mock.ExpectExec("UPDATE catalog_item").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ReserveSeat(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSeatFull(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newCatalogRepository(db)
	id := uuid.New()

	// The capacity guard in the WHERE clause matches no rows.
	mock.ExpectExec("UPDATE catalog_item").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ReserveSeat(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrCapacityFull)
}

func TestCatalogGetAllFiltered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newCatalogRepository(db)

	itemType := domain.ItemTypeEvent
	search := "camp"
	filters := &CatalogFilters{
		Type:       &itemType,
		Search:     &search,
		SortBy:     "starts_at",
		Order:      "asc",
		PublicOnly: true,
	}

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "type", "title", "description", "location", "starts_at", "ends_at",
		"instructor", "duration_weeks", "age_min", "age_max",
		"fee", "max_participants", "registered_count", "status",
		"created_at", "updated_at", "deleted_at",
	}).AddRow(
		uuid.New().String(), "event", "Summer Camp", "Annual summer camp", nil, now, nil,
		nil, nil, nil, nil,
		int64(50000), 30, 12, "active",
		now, now, nil,
	)

	mock.ExpectQuery("SELECT(.+)FROM catalog_item(.+)status = (.+)type = (.+)title LIKE(.+)ORDER BY starts_at ASC").
		WithArgs(string(domain.ItemActive), string(itemType), "%camp%", "%camp%", 10, 0).
		WillReturnRows(rows)

	items, err := repo.GetAll(context.Background(), 10, 0, filters)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Summer Camp", items[0].Title)
	assert.Equal(t, 18, items[0].SeatsLeft())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newCatalogRepository(db)
	id := uuid.New()

	mock.ExpectExec("UPDATE catalog_item").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
