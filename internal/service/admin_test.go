package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminRepo struct {
	admin *domain.AdminUser
}

func (f *fakeAdminRepo) GetByCredentials(_ context.Context, email, passwordHash string) (*domain.AdminUser, error) {
	if f.admin != nil && f.admin.Email == email && f.admin.PasswordHash == passwordHash {
		return f.admin, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	if f.admin != nil && f.admin.ID == id {
		return f.admin, nil
	}
	return nil, domain.ErrNotFound
}

type fakeStatsRepo struct{}

func (fakeStatsRepo) Totals(_ context.Context) (*repository.SiteStats, error) {
	return &repository.SiteStats{Events: 3, Registrations: 42}, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

type fakeTokenManager struct{}

func (fakeTokenManager) NewJWT(adminID *uuid.UUID) (string, time.Duration, error) {
	return "token-" + adminID.String(), time.Hour, nil
}

func (fakeTokenManager) Parse(_ string) (string, error) { return "", nil }

func adminFixture(regs *fakeRegistrationRepo) (*adminService, *fakeAdminRepo) {
	admins := &fakeAdminRepo{
		admin: &domain.AdminUser{
			ID:           uuid.New(),
			Email:        "admin@example.com",
			Name:         "Site Admin",
			PasswordHash: "hashed:correct-horse",
		},
	}
	if regs == nil {
		regs = newFakeRegistrationRepo()
	}
	return newAdminService(admins, fakeStatsRepo{}, regs, fakeHasher{}, fakeTokenManager{}), admins
}

func TestAdminLogin(t *testing.T) {
	svc, admins := adminFixture(nil)

	result, err := svc.Login(context.Background(), "admin@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "token-"+admins.admin.ID.String(), result.AccessToken)
	assert.Equal(t, time.Hour, result.ExpiresIn)
	assert.Equal(t, "Site Admin", result.Name)
}

func TestAdminLoginBadPassword(t *testing.T) {
	svc, _ := adminFixture(nil)

	_, err := svc.Login(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminStats(t *testing.T) {
	svc, _ := adminFixture(nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.Registrations)
}

func TestImportLegacy(t *testing.T) {
	svc, _ := adminFixture(nil)

	records := []map[string]json.RawMessage{
		{
			"name":     json.RawMessage(`{"S": "Asha Rao"}`),
			"itemType": json.RawMessage(`{"S": "event"}`),
		},
		{
			"name":     json.RawMessage(`"Ravi Kumar"`),
			"itemType": json.RawMessage(`"course"`),
		},
		{
			// Typed record with a non-numeric N value: skipped, not fatal.
			"age": json.RawMessage(`{"N": "not-a-number"}`),
		},
	}

	imported, err := svc.ImportLegacy(context.Background(), "registrations", records)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
}

func TestImportLegacyUnsupportedResource(t *testing.T) {
	svc, _ := adminFixture(nil)

	_, err := svc.ImportLegacy(context.Background(), "volunteers", nil)
	assert.ErrorIs(t, err, ErrUnsupportedResource)
}
