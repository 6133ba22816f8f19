package service

import (
	"context"
	"encoding/json"

	"github.com/communityhub/backend/internal/cache"
	"github.com/communityhub/backend/internal/config"
	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/payment"
	"github.com/communityhub/backend/internal/repository"
	"github.com/communityhub/backend/pkg/auth"
	"github.com/communityhub/backend/pkg/hash"

	"github.com/google/uuid"
)

type Services struct {
	Catalog       Catalog
	Checkout      Checkout
	Registrations Registrations
	Volunteers    Volunteers
	Suggestions   Suggestions
	Messages      Messages
	Admin         Admin
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	Repos        *repository.Repositories
	Gateway      Gateway
	Cache        *cache.Store
}

func NewServices(deps Deps) *Services {
	return &Services{
		Catalog:  newCatalogService(deps.Repos.Catalog, deps.Cache),
		Checkout: newCheckoutService(deps.Repos.PaymentOrders, deps.Repos.Catalog, deps.Gateway, deps.Config).WithCache(deps.Cache),
		Registrations: newRegistrationService(
			deps.Repos.Registrations,
			deps.Repos.Catalog,
			deps.Cache,
		),
		Volunteers:  newVolunteerService(deps.Repos.Volunteers),
		Suggestions: newSuggestionService(deps.Repos.Suggestions),
		Messages:    newMessageService(deps.Repos.Messages),
		Admin: newAdminService(
			deps.Repos.AdminUsers,
			deps.Repos.Stats,
			deps.Repos.Registrations,
			deps.Hasher,
			deps.TokenManager,
		),
	}
}

// Gateway is the checkout gateway surface the checkout saga needs;
// *payment.Client satisfies it.
type Gateway interface {
	KeyID() string
	Currency() string
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*payment.Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*payment.Payment, error)
	ListOrderPayments(ctx context.Context, orderID string) ([]payment.Payment, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type Catalog interface {
	GetAll(ctx context.Context, page, limit int, filters *repository.CatalogFilters) ([]*domain.CatalogItem, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error)
	Create(ctx context.Context, item *domain.CatalogItem) error
	Update(ctx context.Context, item *domain.CatalogItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Checkout interface {
	CreateOrder(ctx context.Context, itemID uuid.UUID, candidate domain.Candidate) (*CheckoutOrder, error)
	Verify(ctx context.Context, input VerifyInput) (*domain.Registration, error)
	Cancel(ctx context.Context, gatewayOrderID string) error
	ReconcileOrder(ctx context.Context, gatewayOrderID string) error
}

type Registrations interface {
	Register(ctx context.Context, itemID uuid.UUID, candidate domain.Candidate) (*domain.Registration, error)
	GetAll(ctx context.Context, page, limit int, filters *repository.RegistrationFilters) ([]*domain.Registration, int64, error)
	GetFilterStats(ctx context.Context, filters *repository.RegistrationFilters) (*repository.RegistrationStats, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus) error
}

type Volunteers interface {
	Create(ctx context.Context, v *domain.Volunteer) error
	GetAll(ctx context.Context, page, limit int) ([]*domain.Volunteer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Suggestions interface {
	Create(ctx context.Context, s *domain.Suggestion) error
	GetAll(ctx context.Context, page, limit int) ([]*domain.Suggestion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Messages interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
	GetAll(ctx context.Context, page, limit int, status *domain.MessageStatus) ([]*domain.ContactMessage, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Admin interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Stats(ctx context.Context) (*repository.SiteStats, error)
	ImportLegacy(ctx context.Context, resource string, records []map[string]json.RawMessage) (int, error)
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
