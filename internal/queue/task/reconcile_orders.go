package task

import (
	"github.com/hibiken/asynq"
)

const (
	ReconcileOrdersTaskName  = "reconcileOrdersTask"
	ReconcileOrdersQueueName = "reconcileOrdersQueue"
)

// NewReconcileOrdersTask triggers one sweep over payment orders stuck
// without a verification callback. Carries no payload; the sweep reads
// its work from the database.
func NewReconcileOrdersTask() *asynq.Task {
	return asynq.NewTask(
		ReconcileOrdersTaskName,
		nil,
		asynq.MaxRetry(1),
		asynq.Queue(ReconcileOrdersQueueName),
	)
}
