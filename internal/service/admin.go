package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/legacy"
	"github.com/communityhub/backend/internal/repository"
	"github.com/communityhub/backend/pkg/auth"
	"github.com/communityhub/backend/pkg/hash"
	"github.com/communityhub/backend/pkg/logger"

	"go.uber.org/zap"
)

type LoginResult struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   time.Duration `json:"expires_in"`
	Name        string        `json:"name"`
}

type adminService struct {
	admins        repository.AdminUserRepository
	stats         repository.StatsRepository
	registrations repository.RegistrationRepository
	hasher        hash.PasswordHasher
	tokenManager  auth.TokenManager
}

func newAdminService(
	admins repository.AdminUserRepository,
	stats repository.StatsRepository,
	registrations repository.RegistrationRepository,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
) *adminService {
	return &adminService{
		admins:        admins,
		stats:         stats,
		registrations: registrations,
		hasher:        hasher,
		tokenManager:  tokenManager,
	}
}

func (s *adminService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	admin, err := s.admins.GetByCredentials(ctx, email, passwordHash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, ttl, err := s.tokenManager.NewJWT(&admin.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   ttl,
		Name:        admin.Name,
	}, nil
}

func (s *adminService) Stats(ctx context.Context) (*repository.SiteStats, error) {
	return s.stats.Totals(ctx)
}

// ImportLegacy ingests records exported from the old backend, accepting
// both plain JSON and the key-typed attribute encoding its storage engine
// produced. Bad records are skipped and counted, not fatal: partial
// imports are re-runnable.
func (s *adminService) ImportLegacy(ctx context.Context, resource string, records []map[string]json.RawMessage) (int, error) {
	if resource != "registrations" {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedResource, resource)
	}

	imported := 0
	for i, record := range records {
		plain, err := legacy.Normalize(record)
		if err != nil {
			logger.Warn("legacy import: skipping undecodable record",
				zap.Int("index", i), zap.Error(err))
			continue
		}

		if err := s.registrations.InsertLegacy(ctx, plain); err != nil {
			if errors.Is(err, domain.ErrDuplicateEntry) {
				continue
			}
			logger.Warn("legacy import: skipping rejected record",
				zap.Int("index", i), zap.Error(err))
			continue
		}
		imported++
	}

	logger.Info("legacy import finished",
		zap.String("resource", resource),
		zap.Int("received", len(records)),
		zap.Int("imported", imported))

	return imported, nil
}
