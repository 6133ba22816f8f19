package processor

import (
	"context"
	"fmt"

	"github.com/communityhub/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type reconcileOrdersProcessor struct {
	workers *worker.Workers
}

func NewReconcileOrdersProcessor(workers *worker.Workers) *reconcileOrdersProcessor {
	return &reconcileOrdersProcessor{
		workers: workers,
	}
}

func (p *reconcileOrdersProcessor) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	if err := p.workers.OrderReconciler.Sweep(ctx); err != nil {
		return fmt.Errorf("reconcile payment orders sweep failed: %w", err)
	}

	return nil
}
