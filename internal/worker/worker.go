package worker

import (
	"context"

	"github.com/communityhub/backend/internal/config"
	"github.com/communityhub/backend/internal/repository"
	"github.com/communityhub/backend/internal/service"
	emailProvider "github.com/communityhub/backend/pkg/email"
)

type Workers struct {
	EmailSender     EmailSender
	OrderReconciler OrderReconciler
}

type Deps struct {
	Services      *service.Services
	Repos         *repository.Repositories
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendRegistrationConfirmedEmail(ctx context.Context, email, name, itemTitle string) error
}

type OrderReconciler interface {
	Sweep(ctx context.Context) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender:     newEmailSender(deps.EmailProvider, deps.Config.Email),
		OrderReconciler: newOrderReconciler(deps.Services.Checkout, deps.Repos.PaymentOrders, deps.Config.Reconcile),
	}
}
