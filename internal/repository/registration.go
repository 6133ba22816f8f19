package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/communityhub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const registrationColumns = `
	id, item_id, item_type, item_title,
	name, email, phone, age, gender, education, community_opt_in,
	status, payment_status, receipt_id, notes,
	created_at, updated_at, deleted_at`

type registrationRepository struct {
	db *sqlx.DB
}

func newRegistrationRepository(db *sqlx.DB) *registrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	return insertRegistration(ctx, r.db, reg)
}

func insertRegistration(ctx context.Context, ext sqlx.ExtContext, reg *domain.Registration) error {
	const query = `
	INSERT INTO registration (id, item_id, item_type, item_title,
		name, email, phone, age, gender, education, community_opt_in,
		status, payment_status, receipt_id, notes, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := ext.ExecContext(ctx, query,
		reg.ID, reg.ItemID, reg.ItemType, reg.ItemTitle,
		reg.Name, reg.Email, reg.Phone, reg.Age, reg.Gender, reg.Education, reg.CommunityOptIn,
		reg.Status, reg.PaymentStatus, reg.ReceiptID, reg.Notes,
		reg.CreatedAt, reg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db insert registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	query := `SELECT` + registrationColumns + `
		FROM registration
		WHERE id = ? AND deleted_at IS NULL`

	var reg domain.Registration
	err := r.db.GetContext(ctx, &reg, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) GetByReceiptID(ctx context.Context, receiptID string) (*domain.Registration, error) {
	query := `SELECT` + registrationColumns + `
		FROM registration
		WHERE receipt_id = ? AND deleted_at IS NULL`

	var reg domain.Registration
	err := r.db.GetContext(ctx, &reg, query, receiptID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) GetAll(ctx context.Context, limit, offset int, filters *RegistrationFilters) ([]*domain.Registration, error) {
	query := `SELECT` + registrationColumns + `
		FROM registration
		WHERE deleted_at IS NULL`

	args := []interface{}{}
	query, args = applyRegistrationFilters(query, args, filters)

	orderBy := "created_at"
	orderDir := "DESC"
	if filters != nil {
		switch filters.SortBy {
		case "name":
			orderBy = "name"
		case "item_title":
			orderBy = "item_title"
		}
		if filters.Order == "asc" {
			orderDir = "ASC"
		}
	}

	query += fmt.Sprintf(` ORDER BY %s %s LIMIT ? OFFSET ?`, orderBy, orderDir)
	args = append(args, limit, offset)

	var regs []*domain.Registration
	if err := r.db.SelectContext(ctx, &regs, query, args...); err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) Count(ctx context.Context, filters *RegistrationFilters) (int64, error) {
	query := `SELECT COUNT(*) FROM registration WHERE deleted_at IS NULL`

	args := []interface{}{}
	query, args = applyRegistrationFilters(query, args, filters)

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func applyRegistrationFilters(query string, args []interface{}, filters *RegistrationFilters) (string, []interface{}) {
	if filters == nil {
		return query, args
	}

	if filters.ItemType != nil {
		query += ` AND item_type = ?`
		args = append(args, *filters.ItemType)
	}

	if filters.ItemID != nil {
		query += ` AND item_id = ?`
		args = append(args, *filters.ItemID)
	}

	if filters.Status != nil {
		query += ` AND status = ?`
		args = append(args, *filters.Status)
	}

	if filters.PaymentStatus != nil {
		query += ` AND payment_status = ?`
		args = append(args, *filters.PaymentStatus)
	}

	if filters.Search != nil && *filters.Search != "" {
		query += ` AND (name LIKE ? OR email LIKE ? OR item_title LIKE ?)`
		pattern := "%" + *filters.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	return query, args
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus) error {
	const query = `
		UPDATE registration
		SET status = ?, updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("db update registration status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db update registration status: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetFilterStats recomputes the aggregate counts shown next to the admin
// listing for the currently filtered set. No incremental maintenance.
func (r *registrationRepository) GetFilterStats(ctx context.Context, filters *RegistrationFilters) (*RegistrationStats, error) {
	stats := &RegistrationStats{
		ByStatus: make(map[string]int64),
		ByType:   make(map[string]int64),
		ByItem:   make(map[string]int64),
	}

	type bucketRow struct {
		Bucket string `db:"bucket"`
		Count  int64  `db:"count"`
	}

	groups := []struct {
		column string
		dest   map[string]int64
	}{
		{"status", stats.ByStatus},
		{"item_type", stats.ByType},
		{"item_title", stats.ByItem},
	}

	for _, g := range groups {
		query := fmt.Sprintf(`SELECT %s as bucket, COUNT(*) as count FROM registration WHERE deleted_at IS NULL`, g.column)
		args := []interface{}{}
		query, args = applyRegistrationFilters(query, args, filters)
		query += fmt.Sprintf(` GROUP BY %s`, g.column)

		var rows []bucketRow
		if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
			return nil, fmt.Errorf("failed to get %s stats: %w", g.column, err)
		}
		for _, row := range rows {
			g.dest[row.Bucket] = row.Count
		}
	}

	return stats, nil
}

// InsertLegacy stores a decoded legacy record. Only the columns the old
// export carried are mapped; everything unknown lands in notes.
func (r *registrationRepository) InsertLegacy(ctx context.Context, record map[string]any) error {
	reg := &domain.Registration{
		ID:            uuid.New(),
		Status:        domain.RegistrationRegistered,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if s, ok := record["name"].(string); ok {
		reg.Name = s
	}
	if s, ok := record["email"].(string); ok {
		reg.Email = s
	}
	if s, ok := record["phone"].(string); ok {
		reg.Phone = s
	}
	if n, ok := record["age"].(int64); ok {
		reg.Age = int(n)
	}
	if s, ok := record["gender"].(string); ok {
		reg.Gender = domain.Gender(s)
	}
	if s, ok := record["education"].(string); ok {
		reg.Education = s
	}
	if b, ok := record["communityOptIn"].(bool); ok {
		reg.CommunityOptIn = b
	}
	if s, ok := record["itemId"].(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			reg.ItemID = id
		}
	}
	if s, ok := record["itemType"].(string); ok {
		reg.ItemType = domain.ItemType(s)
	}
	if s, ok := record["itemTitle"].(string); ok {
		reg.ItemTitle = s
	}
	if s, ok := record["status"].(string); ok && domain.RegistrationStatus(s).Valid() {
		reg.Status = domain.RegistrationStatus(s)
	}
	if s, ok := record["paymentStatus"].(string); ok {
		reg.PaymentStatus = domain.PaymentStatus(s)
	}
	if s, ok := record["notes"].(string); ok {
		reg.Notes = s
	}
	if s, ok := record["receiptId"].(string); ok && s != "" {
		reg.ReceiptID = &s
	}

	if !reg.ItemType.Valid() {
		return fmt.Errorf("legacy record: bad or missing itemType")
	}

	return insertRegistration(ctx, r.db, reg)
}
