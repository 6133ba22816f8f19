package service

import (
	"context"
	"fmt"
	"time"

	"github.com/communityhub/backend/internal/cache"
	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/repository"
	"github.com/communityhub/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type registrationService struct {
	repo    repository.RegistrationRepository
	catalog repository.CatalogRepository
	cache   *cache.Store
}

func newRegistrationService(
	repo repository.RegistrationRepository,
	catalog repository.CatalogRepository,
	store *cache.Store,
) *registrationService {
	return &registrationService{
		repo:    repo,
		catalog: catalog,
		cache:   store,
	}
}

// Register enrolls a candidate in a free item. Paid items must go through
// checkout; sending them here is rejected so the fee can never be skipped.
func (s *registrationService) Register(ctx context.Context, itemID uuid.UUID, candidate domain.Candidate) (*domain.Registration, error) {
	item, err := s.catalog.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.Status != domain.ItemActive {
		return nil, ErrItemNotOpen
	}
	if item.IsPaid() {
		return nil, ErrItemNotFree
	}

	ageMin, ageMax := item.AgeBounds()
	if err := validateCandidate(candidate, ageMin, ageMax); err != nil {
		return nil, err
	}

	if err := s.catalog.ReserveSeat(ctx, itemID); err != nil {
		return nil, err
	}

	now := time.Now()
	reg := &domain.Registration{
		ID:             uuid.New(),
		ItemID:         item.ID,
		ItemType:       item.Type,
		ItemTitle:      item.Title,
		Name:           candidate.Name,
		Email:          candidate.Email,
		Phone:          candidate.Phone,
		Age:            candidate.Age,
		Gender:         candidate.Gender,
		Education:      candidate.Education,
		CommunityOptIn: candidate.CommunityOptIn,
		Status:         domain.RegistrationRegistered,
		PaymentStatus:  domain.PaymentPending,
		Notes:          candidateNotes(candidate),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		// The seat was taken optimistically; give it back so the failed
		// insert doesn't leak capacity.
		if relErr := s.catalog.ReleaseSeat(ctx, itemID); relErr != nil {
			logger.Error("release seat after failed registration insert",
				zap.String("item_id", itemID.String()), zap.Error(relErr))
		}
		return nil, err
	}

	s.invalidate(ctx, item.Type)

	return reg, nil
}

func (s *registrationService) GetAll(ctx context.Context, page, limit int, filters *repository.RegistrationFilters) ([]*domain.Registration, int64, error) {
	page, limit = clampPage(page, limit)
	offset := (page - 1) * limit

	regs, err := s.repo.GetAll(ctx, limit, offset, filters)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	return regs, total, nil
}

func (s *registrationService) GetFilterStats(ctx context.Context, filters *repository.RegistrationFilters) (*repository.RegistrationStats, error) {
	return s.repo.GetFilterStats(ctx, filters)
}

// SetStatus moves a registration between registered/cancelled/completed,
// keeping the item's seat count in step: cancelling frees the seat,
// re-registering takes one back under the capacity guard.
func (s *registrationService) SetStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrBadInput, status)
	}

	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reg.Status == status {
		return nil
	}

	released := false
	reserved := false
	if reg.Status != domain.RegistrationCancelled && status == domain.RegistrationCancelled {
		if err := s.catalog.ReleaseSeat(ctx, reg.ItemID); err != nil {
			return err
		}
		released = true
	}
	if reg.Status == domain.RegistrationCancelled && status != domain.RegistrationCancelled {
		if err := s.catalog.ReserveSeat(ctx, reg.ItemID); err != nil {
			return err
		}
		reserved = true
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		// The seat was adjusted optimistically; undo it so a failed
		// status write doesn't skew capacity.
		switch {
		case released:
			if compErr := s.catalog.ReserveSeat(ctx, reg.ItemID); compErr != nil {
				logger.Error("re-reserve seat after failed status update",
					zap.String("item_id", reg.ItemID.String()), zap.Error(compErr))
			}
		case reserved:
			if compErr := s.catalog.ReleaseSeat(ctx, reg.ItemID); compErr != nil {
				logger.Error("release seat after failed status update",
					zap.String("item_id", reg.ItemID.String()), zap.Error(compErr))
			}
		}
		return err
	}

	s.invalidate(ctx, reg.ItemType)
	return nil
}

func (s *registrationService) invalidate(ctx context.Context, itemType domain.ItemType) {
	invalidateListings(ctx, s.cache, itemType)
}
