package repository

import (
	"context"
	"fmt"

	"github.com/communityhub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type volunteerRepository struct {
	db *sqlx.DB
}

func newVolunteerRepository(db *sqlx.DB) *volunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) Create(ctx context.Context, v *domain.Volunteer) error {
	const query = `
	INSERT INTO volunteer (id, name, email, phone, availability, interests, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.Name, v.Email, v.Phone, v.Availability, v.Interests, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("db insert volunteer: %w", err)
	}
	return nil
}

func (r *volunteerRepository) GetAll(ctx context.Context, limit, offset int) ([]*domain.Volunteer, error) {
	const query = `
		SELECT id, name, email, phone, availability, interests, created_at, deleted_at
		FROM volunteer
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	var out []*domain.Volunteer
	if err := r.db.SelectContext(ctx, &out, query, limit, offset); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *volunteerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, "volunteer", id)
}

type suggestionRepository struct {
	db *sqlx.DB
}

func newSuggestionRepository(db *sqlx.DB) *suggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Create(ctx context.Context, s *domain.Suggestion) error {
	const query = `
	INSERT INTO suggestion (id, name, email, subject, body, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.Email, s.Subject, s.Body, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("db insert suggestion: %w", err)
	}
	return nil
}

func (r *suggestionRepository) GetAll(ctx context.Context, limit, offset int) ([]*domain.Suggestion, error) {
	const query = `
		SELECT id, name, email, subject, body, created_at, deleted_at
		FROM suggestion
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	var out []*domain.Suggestion
	if err := r.db.SelectContext(ctx, &out, query, limit, offset); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *suggestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, "suggestion", id)
}

type messageRepository struct {
	db *sqlx.DB
}

func newMessageRepository(db *sqlx.DB) *messageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	const query = `
	INSERT INTO contact_message (id, name, email, phone, body, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Email, m.Phone, m.Body, m.Status, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("db insert contact message: %w", err)
	}
	return nil
}

func (r *messageRepository) GetAll(ctx context.Context, limit, offset int, status *domain.MessageStatus) ([]*domain.ContactMessage, error) {
	query := `
		SELECT id, name, email, phone, body, status, created_at, deleted_at
		FROM contact_message
		WHERE deleted_at IS NULL`

	args := []interface{}{}
	if status != nil {
		query += ` AND status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []*domain.ContactMessage
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *messageRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error {
	const query = `
		UPDATE contact_message
		SET status = ?
		WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("db update message status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db update message status: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, "contact_message", id)
}

func softDelete(ctx context.Context, db *sqlx.DB, table string, id uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, table)

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db delete from %s: %w", table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db delete from %s: %w", table, err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
