package service

import (
	"context"
	"time"

	"github.com/communityhub/backend/internal/cache"
	"github.com/communityhub/backend/internal/config"
	"github.com/communityhub/backend/internal/domain"
	qclient "github.com/communityhub/backend/internal/queue/client"
	"github.com/communityhub/backend/internal/queue/task"
	"github.com/communityhub/backend/internal/repository"
	"github.com/communityhub/backend/pkg/logger"
	"github.com/communityhub/backend/pkg/receipt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CheckoutOrder is everything the browser needs to open the hosted
// checkout widget for an issued order.
type CheckoutOrder struct {
	GatewayOrderID string         `json:"gateway_order_id"`
	GatewayKeyID   string         `json:"gateway_key_id"`
	Amount         int64          `json:"amount"`
	Currency       string         `json:"currency"`
	ReceiptID      string         `json:"receipt_id"`
	Item           domain.ItemRef `json:"item"`
	Prefill        Prefill        `json:"prefill"`
}

type Prefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// VerifyInput is the checkout callback payload. None of it is trusted:
// the signature is recomputed and the payment state re-read from the
// gateway before anything is recorded.
type VerifyInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

type CheckoutService struct {
	orders  repository.PaymentOrderRepository
	catalog repository.CatalogRepository
	gateway Gateway
	cache   *cache.Store
	config  *config.Config
}

func newCheckoutService(
	orders repository.PaymentOrderRepository,
	catalog repository.CatalogRepository,
	gateway Gateway,
	cfg *config.Config,
) *CheckoutService {
	return &CheckoutService{
		orders:  orders,
		catalog: catalog,
		gateway: gateway,
		config:  cfg,
	}
}

// WithCache attaches the listing cache so confirmations can drop stale
// seat counts.
func (s *CheckoutService) WithCache(store *cache.Store) *CheckoutService {
	s.cache = store
	return s
}

// CreateOrder drives the first half of a checkout attempt: validate the
// candidate against the item, issue a gateway order for the item's fee and
// persist the local mirror. Every failure is terminal for the attempt; the
// client restarts from validation.
func (s *CheckoutService) CreateOrder(ctx context.Context, itemID uuid.UUID, candidate domain.Candidate) (*CheckoutOrder, error) {
	item, err := s.catalog.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.Status != domain.ItemActive {
		return nil, ErrItemNotOpen
	}
	if !item.IsPaid() {
		return nil, ErrItemFree
	}
	if item.SeatsLeft() == 0 {
		return nil, domain.ErrCapacityFull
	}

	ageMin, ageMax := item.AgeBounds()
	if err := validateCandidate(candidate, ageMin, ageMax); err != nil {
		return nil, err
	}

	receiptID := receipt.New(item.Type.ReceiptPrefix())
	notes := candidateNotes(candidate)

	gwOrder, err := s.gateway.CreateOrder(ctx, item.Fee, s.gateway.Currency(), receiptID, map[string]string{
		"item":    item.Title,
		"details": notes,
	})
	if err != nil {
		return nil, errors.Wrap(err, "gateway order creation failed")
	}

	now := time.Now()
	order := &domain.PaymentOrder{
		ID:             uuid.New(),
		GatewayOrderID: gwOrder.ID,
		ReceiptID:      receiptID,
		Amount:         item.Fee,
		Currency:       gwOrder.Currency,
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
		Notes:          notes,
		Status:         domain.OrderCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "persist payment order failed")
	}

	return &CheckoutOrder{
		GatewayOrderID: order.GatewayOrderID,
		GatewayKeyID:   s.gateway.KeyID(),
		Amount:         order.Amount,
		Currency:       order.Currency,
		ReceiptID:      order.ReceiptID,
		Item:           domain.ItemRef{ID: item.ID, Type: item.Type, Title: item.Title},
		Prefill:        Prefill{Name: candidate.Name, Email: candidate.Email, Phone: candidate.Phone},
	}, nil
}

// Verify settles a checkout callback. The signature is recomputed and the
// payment re-fetched from the gateway; only then does the order settle and
// the registration materialize, atomically. Safe to re-deliver.
func (s *CheckoutService) Verify(ctx context.Context, input VerifyInput) (*domain.Registration, error) {
	order, err := s.orders.GetByGatewayOrderID(ctx, input.GatewayOrderID)
	if err != nil {
		return nil, err
	}

	if !s.gateway.VerifySignature(input.GatewayOrderID, input.GatewayPaymentID, input.Signature) {
		return nil, ErrInvalidSignature
	}

	p, err := s.gateway.FetchPayment(ctx, input.GatewayPaymentID)
	if err != nil {
		return nil, errors.Wrap(err, "gateway payment fetch failed")
	}
	if p.OrderID != order.GatewayOrderID || p.Amount != order.Amount {
		return nil, ErrInvalidSignature
	}
	if !p.Settled() {
		return nil, ErrPaymentNotSettled
	}

	return s.confirm(ctx, order, input.GatewayPaymentID)
}

func (s *CheckoutService) confirm(ctx context.Context, order *domain.PaymentOrder, gatewayPaymentID string) (*domain.Registration, error) {
	now := time.Now()
	reg := &domain.Registration{
		ID:             uuid.New(),
		ItemID:         order.ItemID,
		ItemType:       order.ItemType,
		ItemTitle:      order.ItemTitle,
		Name:           order.Name,
		Email:          order.Email,
		Phone:          order.Phone,
		Age:            order.Age,
		Gender:         order.Gender,
		Education:      order.Education,
		CommunityOptIn: order.CommunityOptIn,
		Status:         domain.RegistrationRegistered,
		PaymentStatus:  domain.PaymentPaid,
		Notes:          order.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	confirmed, created, err := s.orders.ConfirmPaid(ctx, order.GatewayOrderID, gatewayPaymentID, reg)
	if err != nil {
		return nil, err
	}

	if !created {
		return confirmed, nil
	}

	invalidateListings(ctx, s.cache, order.ItemType)

	s.enqueueConfirmationEmail(ctx, confirmed)

	logger.Info("registration confirmed",
		zap.String("gateway_order_id", order.GatewayOrderID),
		zap.String("registration_id", confirmed.ID.String()),
		zap.String("item", order.ItemTitle))

	return confirmed, nil
}

func (s *CheckoutService) enqueueConfirmationEmail(ctx context.Context, reg *domain.Registration) {
	if s.config == nil || !s.config.Email.Enabled {
		return
	}

	client := qclient.GetClient(ctx)
	if client == nil {
		return
	}

	t, err := task.NewSendConfirmationEmailTask(reg.Email, reg.Name, reg.ItemTitle)
	if err != nil {
		logger.Error("build confirmation email task failed", zap.Error(err))
		return
	}

	if _, err := client.EnqueueContext(ctx, t); err != nil {
		logger.Error("enqueue confirmation email failed", zap.Error(err))
	}
}

// Cancel records a dismissed checkout overlay. The order stays open for
// the reconciler in case the gateway captured money anyway; nothing else
// changes, so the user can retry from the form as they left it.
func (s *CheckoutService) Cancel(ctx context.Context, gatewayOrderID string) error {
	err := s.orders.MarkAttempted(ctx, gatewayOrderID)
	if err != nil && !errors.Is(err, domain.ErrNoRowsAffected) {
		return err
	}
	return nil
}

// ReconcileOrder settles one stuck order against gateway truth: a settled
// payment confirms the registration through the normal idempotent path,
// no payment marks the order failed.
func (s *CheckoutService) ReconcileOrder(ctx context.Context, gatewayOrderID string) error {
	order, err := s.orders.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if order.IsSettled() {
		return nil
	}

	payments, err := s.gateway.ListOrderPayments(ctx, gatewayOrderID)
	if err != nil {
		return errors.Wrap(err, "gateway list payments failed")
	}

	for i := range payments {
		if payments[i].Settled() {
			_, err = s.confirm(ctx, order, payments[i].ID)
			return err
		}
	}

	if err := s.orders.MarkFailed(ctx, gatewayOrderID); err != nil && !errors.Is(err, domain.ErrNoRowsAffected) {
		return err
	}

	logger.Info("payment order reconciled as failed", zap.String("gateway_order_id", gatewayOrderID))
	return nil
}
