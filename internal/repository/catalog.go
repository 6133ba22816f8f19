package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/communityhub/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const catalogColumns = `
	id, type, title, description, location, starts_at, ends_at,
	instructor, duration_weeks, age_min, age_max,
	fee, max_participants, registered_count, status,
	created_at, updated_at, deleted_at`

type catalogRepository struct {
	db *sqlx.DB
}

func newCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Create(ctx context.Context, item *domain.CatalogItem) error {
	const query = `
	INSERT INTO catalog_item (id, type, title, description, location, starts_at, ends_at,
		instructor, duration_weeks, age_min, age_max,
		fee, max_participants, registered_count, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Type, item.Title, item.Description, item.Location, item.StartsAt, item.EndsAt,
		item.Instructor, item.DurationWeeks, item.AgeMin, item.AgeMax,
		item.Fee, item.MaxParticipants, item.RegisteredCount, item.Status,
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert catalog item: %w", err)
	}
	return nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	query := `SELECT` + catalogColumns + `
		FROM catalog_item
		WHERE id = ? AND deleted_at IS NULL`

	var item domain.CatalogItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository) GetAll(ctx context.Context, limit, offset int, filters *CatalogFilters) ([]*domain.CatalogItem, error) {
	query := `SELECT` + catalogColumns + `
		FROM catalog_item
		WHERE deleted_at IS NULL`

	args := []interface{}{}
	query, args = applyCatalogFilters(query, args, filters)

	orderBy := "created_at"
	orderDir := "DESC"
	if filters != nil {
		switch filters.SortBy {
		case "starts_at":
			orderBy = "starts_at"
		case "title":
			orderBy = "title"
		}
		if filters.Order == "asc" {
			orderDir = "ASC"
		}
	}

	query += fmt.Sprintf(` ORDER BY %s %s LIMIT ? OFFSET ?`, orderBy, orderDir)
	args = append(args, limit, offset)

	var items []*domain.CatalogItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) Count(ctx context.Context, filters *CatalogFilters) (int64, error) {
	query := `SELECT COUNT(*) FROM catalog_item WHERE deleted_at IS NULL`

	args := []interface{}{}
	query, args = applyCatalogFilters(query, args, filters)

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func applyCatalogFilters(query string, args []interface{}, filters *CatalogFilters) (string, []interface{}) {
	if filters == nil {
		return query, args
	}

	if filters.PublicOnly {
		query += ` AND status = ?`
		args = append(args, domain.ItemActive)
	} else if filters.Status != nil {
		query += ` AND status = ?`
		args = append(args, *filters.Status)
	}

	if filters.Type != nil {
		query += ` AND type = ?`
		args = append(args, *filters.Type)
	}

	if filters.Search != nil && *filters.Search != "" {
		query += ` AND (title LIKE ? OR description LIKE ?)`
		pattern := "%" + *filters.Search + "%"
		args = append(args, pattern, pattern)
	}

	return query, args
}

func (r *catalogRepository) Update(ctx context.Context, item *domain.CatalogItem) error {
	const query = `
		UPDATE catalog_item
		SET title = ?, description = ?, location = ?, starts_at = ?, ends_at = ?,
			instructor = ?, duration_weeks = ?, age_min = ?, age_max = ?,
			fee = ?, max_participants = ?, status = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		item.Title, item.Description, item.Location, item.StartsAt, item.EndsAt,
		item.Instructor, item.DurationWeeks, item.AgeMin, item.AgeMax,
		item.Fee, item.MaxParticipants, item.Status, item.UpdatedAt,
		item.ID)
	if err != nil {
		return fmt.Errorf("db update catalog item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db update catalog item: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE catalog_item
		SET deleted_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db delete catalog item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db delete catalog item: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReserveSeat takes one seat outside a transaction (free registrations).
// Same guard as the transactional path.
func (r *catalogRepository) ReserveSeat(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE catalog_item
		SET registered_count = registered_count + 1, updated_at = NOW()
		WHERE id = ? AND registered_count < max_participants AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db reserve seat: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db reserve seat: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCapacityFull
	}
	return nil
}

// ReleaseSeat hands a seat back after a cancellation; never drops below
// zero.
func (r *catalogRepository) ReleaseSeat(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE catalog_item
		SET registered_count = registered_count - 1, updated_at = NOW()
		WHERE id = ? AND registered_count > 0 AND deleted_at IS NULL`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db release seat: %w", err)
	}
	return nil
}

// reserveSeatTx takes one seat inside an open transaction. The WHERE guard
// is the capacity invariant: registered_count never passes
// max_participants, however many confirmations race.
func reserveSeatTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	const query = `
		UPDATE catalog_item
		SET registered_count = registered_count + 1, updated_at = NOW()
		WHERE id = ? AND registered_count < max_participants AND deleted_at IS NULL`

	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db reserve seat: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db reserve seat: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCapacityFull
	}
	return nil
}
