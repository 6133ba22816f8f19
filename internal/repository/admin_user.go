package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/communityhub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type adminUserRepository struct {
	db *sqlx.DB
}

func newAdminUserRepository(db *sqlx.DB) *adminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) GetByCredentials(ctx context.Context, email, passwordHash string) (*domain.AdminUser, error) {
	const query = `
		SELECT id, email, name, password_hash, created_at, deleted_at
		FROM admin_user
		WHERE email = ? AND password_hash = ? AND deleted_at IS NULL`

	var admin domain.AdminUser
	err := r.db.GetContext(ctx, &admin, query, email, passwordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	const query = `
		SELECT id, email, name, password_hash, created_at, deleted_at
		FROM admin_user
		WHERE id = ? AND deleted_at IS NULL`

	var admin domain.AdminUser
	err := r.db.GetContext(ctx, &admin, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}
