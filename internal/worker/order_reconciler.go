package worker

import (
	"context"
	"time"

	"github.com/communityhub/backend/internal/config"
	"github.com/communityhub/backend/internal/repository"
	"github.com/communityhub/backend/internal/service"
	"github.com/communityhub/backend/pkg/logger"

	"go.uber.org/zap"
)

// sweepBatchSize caps one sweep so a backlog never holds the queue
// worker for long; leftovers are picked up next interval.
const sweepBatchSize = 100

type orderReconciler struct {
	checkout service.Checkout
	orders   repository.PaymentOrderRepository
	config   config.ReconcileConfig
}

func newOrderReconciler(
	checkout service.Checkout,
	orders repository.PaymentOrderRepository,
	config config.ReconcileConfig,
) *orderReconciler {
	return &orderReconciler{
		checkout: checkout,
		orders:   orders,
		config:   config,
	}
}

// Sweep settles payment orders that never received a verification
// callback: each open order older than MinOrderAge is re-checked against
// the gateway. Per-order failures are logged and skipped so one broken
// order cannot stall the rest.
func (r *orderReconciler) Sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-r.config.MinOrderAge)

	orders, err := r.orders.ListUnsettled(ctx, cutoff, sweepBatchSize)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	logger.Info("reconciling stuck payment orders", zap.Int("count", len(orders)))

	for _, order := range orders {
		if err := r.checkout.ReconcileOrder(ctx, order.GatewayOrderID); err != nil {
			logger.Error("reconcile payment order failed",
				zap.String("gateway_order_id", order.GatewayOrderID),
				zap.Error(err))
		}
	}

	return nil
}
