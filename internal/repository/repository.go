package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/communityhub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Catalog       CatalogRepository
	Registrations RegistrationRepository
	PaymentOrders PaymentOrderRepository
	Volunteers    VolunteerRepository
	Suggestions   SuggestionRepository
	Messages      MessageRepository
	AdminUsers    AdminUserRepository
	Stats         StatsRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Catalog:       newCatalogRepository(db),
		Registrations: newRegistrationRepository(db),
		PaymentOrders: newPaymentOrderRepository(db),
		Volunteers:    newVolunteerRepository(db),
		Suggestions:   newSuggestionRepository(db),
		Messages:      newMessageRepository(db),
		AdminUsers:    newAdminUserRepository(db),
		Stats:         newStatsRepository(db),
	}
}

type CatalogRepository interface {
	Create(ctx context.Context, item *domain.CatalogItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error)
	GetAll(ctx context.Context, limit, offset int, filters *CatalogFilters) ([]*domain.CatalogItem, error)
	Count(ctx context.Context, filters *CatalogFilters) (int64, error)
	Update(ctx context.Context, item *domain.CatalogItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReserveSeat(ctx context.Context, id uuid.UUID) error
	ReleaseSeat(ctx context.Context, id uuid.UUID) error
}

type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	GetByReceiptID(ctx context.Context, receiptID string) (*domain.Registration, error)
	GetAll(ctx context.Context, limit, offset int, filters *RegistrationFilters) ([]*domain.Registration, error)
	Count(ctx context.Context, filters *RegistrationFilters) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus) error
	GetFilterStats(ctx context.Context, filters *RegistrationFilters) (*RegistrationStats, error)
	InsertLegacy(ctx context.Context, record map[string]any) error
}

type PaymentOrderRepository interface {
	Create(ctx context.Context, order *domain.PaymentOrder) error
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.PaymentOrder, error)
	MarkAttempted(ctx context.Context, gatewayOrderID string) error
	MarkFailed(ctx context.Context, gatewayOrderID string) error
	ListUnsettled(ctx context.Context, olderThan time.Time, limit int) ([]*domain.PaymentOrder, error)
	// ConfirmPaid settles the order and creates the registration in one
	// transaction, reserving a seat under the capacity guard. Idempotent
	// on the order's receipt id: re-confirming a paid order returns the
	// existing registration with created=false.
	ConfirmPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID string, reg *domain.Registration) (*domain.Registration, bool, error)
}

type VolunteerRepository interface {
	Create(ctx context.Context, v *domain.Volunteer) error
	GetAll(ctx context.Context, limit, offset int) ([]*domain.Volunteer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SuggestionRepository interface {
	Create(ctx context.Context, s *domain.Suggestion) error
	GetAll(ctx context.Context, limit, offset int) ([]*domain.Suggestion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
	GetAll(ctx context.Context, limit, offset int, status *domain.MessageStatus) ([]*domain.ContactMessage, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AdminUserRepository interface {
	GetByCredentials(ctx context.Context, email, passwordHash string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error)
}

type StatsRepository interface {
	Totals(ctx context.Context) (*SiteStats, error)
}

// CatalogFilters narrows catalog listings. Zero values mean no filter.
type CatalogFilters struct {
	Type       *domain.ItemType
	Status     *domain.ItemStatus
	Search     *string
	SortBy     string // "created_at", "starts_at", "title"
	Order      string // "asc", "desc"
	PublicOnly bool   // restrict to active items
}

// RegistrationFilters mirrors the admin listing controls: coarse
// type/item/status filters plus free-text search and sort.
type RegistrationFilters struct {
	ItemType      *domain.ItemType
	ItemID        *uuid.UUID
	Status        *domain.RegistrationStatus
	PaymentStatus *domain.PaymentStatus
	Search        *string
	SortBy        string // "created_at", "name", "item_title"
	Order         string // "asc", "desc"
}

// CacheKey serializes the filters into a stable cache key fragment.
func (f *CatalogFilters) CacheKey() string {
	if f == nil {
		return "all"
	}
	b, _ := json.Marshal(struct {
		Type       *domain.ItemType   `json:"t,omitempty"`
		Status     *domain.ItemStatus `json:"s,omitempty"`
		Search     *string            `json:"q,omitempty"`
		SortBy     string             `json:"sb,omitempty"`
		Order      string             `json:"o,omitempty"`
		PublicOnly bool               `json:"p,omitempty"`
	}(*f))
	return string(b)
}

type RegistrationStats struct {
	ByStatus map[string]int64 `json:"by_status"`
	ByType   map[string]int64 `json:"by_type"`
	ByItem   map[string]int64 `json:"by_item"`
}

type SiteStats struct {
	Events        int64 `json:"events"`
	Courses       int64 `json:"courses"`
	Competitions  int64 `json:"competitions"`
	Registrations int64 `json:"registrations"`
	Volunteers    int64 `json:"volunteers"`
	Suggestions   int64 `json:"suggestions"`
	Messages      int64 `json:"messages"`
	UnreadMsgs    int64 `json:"unread_messages"`
	PaidOrders    int64 `json:"paid_orders"`
	Revenue       int64 `json:"revenue"`
}
