package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrationRepo struct {
	byID            map[uuid.UUID]*domain.Registration
	createErr       error
	updateStatusErr error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{byID: make(map[uuid.UUID]*domain.Registration)}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, reg *domain.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *reg
	f.byID[reg.ID] = &cp
	return nil
}

func (f *fakeRegistrationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Registration, error) {
	reg, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

func (f *fakeRegistrationRepo) GetByReceiptID(_ context.Context, receiptID string) (*domain.Registration, error) {
	for _, reg := range f.byID {
		if reg.ReceiptID != nil && *reg.ReceiptID == receiptID {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) GetAll(_ context.Context, limit, offset int, _ *repository.RegistrationFilters) ([]*domain.Registration, error) {
	out := make([]*domain.Registration, 0, len(f.byID))
	for _, reg := range f.byID {
		out = append(out, reg)
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeRegistrationRepo) Count(_ context.Context, _ *repository.RegistrationFilters) (int64, error) {
	return int64(len(f.byID)), nil
}

func (f *fakeRegistrationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.RegistrationStatus) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	reg, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	reg.Status = status
	reg.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRegistrationRepo) GetFilterStats(_ context.Context, _ *repository.RegistrationFilters) (*repository.RegistrationStats, error) {
	stats := &repository.RegistrationStats{
		ByStatus: map[string]int64{},
		ByType:   map[string]int64{},
		ByItem:   map[string]int64{},
	}
	for _, reg := range f.byID {
		stats.ByStatus[string(reg.Status)]++
		stats.ByType[string(reg.ItemType)]++
		stats.ByItem[reg.ItemTitle]++
	}
	return stats, nil
}

func (f *fakeRegistrationRepo) InsertLegacy(_ context.Context, _ map[string]any) error {
	return nil
}

func freeItem(maxSeats, taken int) *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:              uuid.New(),
		Type:            domain.ItemTypeCourse,
		Title:           "Intro to Robotics",
		Description:     "Weekly robotics course",
		Fee:             0,
		MaxParticipants: maxSeats,
		RegisteredCount: taken,
		Status:          domain.ItemActive,
	}
}

func registrationFixture(items ...*domain.CatalogItem) (*registrationService, *fakeCatalogRepo, *fakeRegistrationRepo) {
	catalog := newFakeCatalogRepo(items...)
	regs := newFakeRegistrationRepo()
	return newRegistrationService(regs, catalog, nil), catalog, regs
}

func TestRegisterFree(t *testing.T) {
	item := freeItem(5, 0)
	svc, catalog, regs := registrationFixture(item)

	reg, err := svc.Register(context.Background(), item.ID, validCandidate())
	require.NoError(t, err)

	assert.Equal(t, domain.RegistrationRegistered, reg.Status)
	assert.Equal(t, domain.PaymentPending, reg.PaymentStatus)
	assert.Equal(t, item.Title, reg.ItemTitle)

	stored, _ := catalog.GetByID(context.Background(), item.ID)
	assert.Equal(t, 1, stored.RegisteredCount)
	assert.Len(t, regs.byID, 1)
}

func TestRegisterFreeRejectsPaidItem(t *testing.T) {
	item := paidItem(50000, 5, 0)
	svc, catalog, _ := registrationFixture(item)

	_, err := svc.Register(context.Background(), item.ID, validCandidate())
	assert.ErrorIs(t, err, ErrItemNotFree)

	stored, _ := catalog.GetByID(context.Background(), item.ID)
	assert.Zero(t, stored.RegisteredCount)
}

func TestRegisterFreeCapacityFull(t *testing.T) {
	item := freeItem(2, 2)
	svc, _, regs := registrationFixture(item)

	_, err := svc.Register(context.Background(), item.ID, validCandidate())
	assert.ErrorIs(t, err, domain.ErrCapacityFull)
	assert.Empty(t, regs.byID)
}

func TestRegisterFreeReleasesSeatOnInsertFailure(t *testing.T) {
	item := freeItem(5, 0)
	svc, catalog, regs := registrationFixture(item)
	regs.createErr = domain.ErrDuplicateEntry

	_, err := svc.Register(context.Background(), item.ID, validCandidate())
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	stored, _ := catalog.GetByID(context.Background(), item.ID)
	assert.Zero(t, stored.RegisteredCount, "failed insert must give the seat back")
}

func TestRegisterFreeCompetitionAgeBounds(t *testing.T) {
	item := freeItem(5, 0)
	item.Type = domain.ItemTypeCompetition

	svc, _, _ := registrationFixture(item)

	adult := validCandidate()
	adult.Age = 25

	_, err := svc.Register(context.Background(), item.ID, adult)
	assert.ErrorIs(t, err, ErrInvalidCandidate)
}

func TestSetStatusSeatAccounting(t *testing.T) {
	item := freeItem(5, 0)
	svc, catalog, _ := registrationFixture(item)

	reg, err := svc.Register(context.Background(), item.ID, validCandidate())
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(context.Background(), reg.ID, domain.RegistrationCancelled))
	stored, _ := catalog.GetByID(context.Background(), item.ID)
	assert.Zero(t, stored.RegisteredCount, "cancelling frees the seat")

	require.NoError(t, svc.SetStatus(context.Background(), reg.ID, domain.RegistrationRegistered))
	stored, _ = catalog.GetByID(context.Background(), item.ID)
	assert.Equal(t, 1, stored.RegisteredCount, "re-registering takes the seat back")

	require.NoError(t, svc.SetStatus(context.Background(), reg.ID, domain.RegistrationCompleted))
	stored, _ = catalog.GetByID(context.Background(), item.ID)
	assert.Equal(t, 1, stored.RegisteredCount, "completing keeps the seat")
}

func TestSetStatusRestoresSeatOnFailedCancel(t *testing.T) {
	item := freeItem(5, 0)
	svc, catalog, regs := registrationFixture(item)

	reg, err := svc.Register(context.Background(), item.ID, validCandidate())
	require.NoError(t, err)

	regs.updateStatusErr = errors.New("db gone")

	err = svc.SetStatus(context.Background(), reg.ID, domain.RegistrationCancelled)
	require.Error(t, err)

	stored, _ := catalog.GetByID(context.Background(), item.ID)
	assert.Equal(t, 1, stored.RegisteredCount, "failed status write must not free the seat")

	got, _ := regs.GetByID(context.Background(), reg.ID)
	assert.Equal(t, domain.RegistrationRegistered, got.Status)
}

func TestSetStatusReleasesSeatOnFailedReregister(t *testing.T) {
	item := freeItem(5, 0)
	svc, catalog, regs := registrationFixture(item)

	reg, err := svc.Register(context.Background(), item.ID, validCandidate())
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(context.Background(), reg.ID, domain.RegistrationCancelled))

	regs.updateStatusErr = errors.New("db gone")

	err = svc.SetStatus(context.Background(), reg.ID, domain.RegistrationRegistered)
	require.Error(t, err)

	stored, _ := catalog.GetByID(context.Background(), item.ID)
	assert.Zero(t, stored.RegisteredCount, "failed status write must not hold the seat")
}

func TestSetStatusUnknownStatus(t *testing.T) {
	svc, _, _ := registrationFixture()
	err := svc.SetStatus(context.Background(), uuid.New(), domain.RegistrationStatus("bogus"))
	assert.ErrorIs(t, err, domain.ErrBadInput)
}
