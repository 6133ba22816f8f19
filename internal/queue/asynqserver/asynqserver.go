package asynqserver

import (
	"github.com/communityhub/backend/internal/cache"
	"github.com/communityhub/backend/internal/config"
	"github.com/communityhub/backend/internal/queue/processor"
	"github.com/communityhub/backend/internal/queue/task"
	"github.com/communityhub/backend/internal/worker"

	"github.com/hibiken/asynq"
)

func New(cfg config.Cache, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: 10,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.SendConfirmationEmailTaskName, processor.NewSendConfirmationEmailProcessor(workers))
	mux.Handle(task.ReconcileOrdersTaskName, processor.NewReconcileOrdersProcessor(workers))
	queues := map[string]int{
		task.SendConfirmationEmailQueueName: 2,
		task.ReconcileOrdersQueueName:       1,
	}
	return mux, queues
}
