package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/communityhub/backend/internal/api/http"
	"github.com/communityhub/backend/internal/cache"
	"github.com/communityhub/backend/internal/config"
	"github.com/communityhub/backend/internal/db"
	"github.com/communityhub/backend/internal/payment"
	"github.com/communityhub/backend/internal/queue/asynqserver"
	qclient "github.com/communityhub/backend/internal/queue/client"
	"github.com/communityhub/backend/internal/queue/task"
	"github.com/communityhub/backend/internal/repository"
	"github.com/communityhub/backend/internal/server"
	"github.com/communityhub/backend/internal/service"
	"github.com/communityhub/backend/internal/worker"
	"github.com/communityhub/backend/pkg/auth"
	emailProvider "github.com/communityhub/backend/pkg/email"
	"github.com/communityhub/backend/pkg/email/smtp"
	"github.com/communityhub/backend/pkg/hash"
	"github.com/communityhub/backend/pkg/logger"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()

	logger.Init(cfg.Env, cfg.LogLevel)
	logger.Info("starting backend api", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing mysql", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("error when closing redis", zap.Error(err))
		}
	}()
	logger.Info("redis connection done")

	cacheStore := cache.NewStore(redisClient, cfg.Cache.TTL)

	gateway, err := payment.NewClient(cfg.Gateway)
	if err != nil {
		logger.Error("payment gateway client creation failed", zap.Error(err))
		os.Exit(1)
	}

	hasher := hash.NewSHA256Hasher(cfg.Auth.PasswordSalt)

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation failed", zap.Error(err))
		os.Exit(1)
	}

	var emailSender emailProvider.Sender
	if cfg.Email.Enabled {
		emailSender, err = smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
		if err != nil {
			logger.Error("smtp sender creation failed", zap.Error(err))
			os.Exit(1)
		}
	}

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		Repos:        repos,
		Gateway:      gateway,
		Cache:        cacheStore,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// Task queue: enqueue client, processing server and the periodic
	// reconcile trigger.
	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Error("error when closing asynq client", zap.Error(err))
		}
	}()
	qclient.SetClient(asynqClient)

	workers := worker.NewWorkers(worker.Deps{
		Services:      services,
		Repos:         repos,
		EmailProvider: emailSender,
		Config:        cfg,
	})

	asynqSrv, mux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := asynqSrv.Run(mux); err != nil {
			logger.Error("error occurred while running asynq server", zap.Error(err))
		}
	}()

	scheduler := asynq.NewScheduler(asynqserver.RedisOptions(cfg.Cache), nil)
	if _, err := scheduler.Register(
		fmt.Sprintf("@every %s", cfg.Reconcile.Interval),
		task.NewReconcileOrdersTask(),
	); err != nil {
		logger.Error("reconcile task registration failed", zap.Error(err))
		os.Exit(1)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("error occurred while running scheduler", zap.Error(err))
		}
	}()

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	scheduler.Shutdown()
	asynqSrv.Shutdown()

	logger.Info("app stopped")
}
