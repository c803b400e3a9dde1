package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	apiHttp "github.com/taskhive/backend/internal/api/http"
	"github.com/taskhive/backend/internal/cache"
	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/db"
	"github.com/taskhive/backend/internal/queue/asynqserver"
	queueClient "github.com/taskhive/backend/internal/queue/client"
	"github.com/taskhive/backend/internal/repository"
	"github.com/taskhive/backend/internal/server"
	"github.com/taskhive/backend/internal/service"
	"github.com/taskhive/backend/internal/worker"
	"github.com/taskhive/backend/pkg/auth"
	"github.com/taskhive/backend/pkg/email/smtp"
	"github.com/taskhive/backend/pkg/hash"
	"github.com/taskhive/backend/pkg/logger"
	"github.com/taskhive/backend/pkg/otp"
	"github.com/taskhive/backend/pkg/upload"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	logger.Setup(cfg.Env)
	defer logger.Logger().Sync() //nolint:errcheck

	logger.Info("starting backend api", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	// Init database
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

	hasher := hash.NewSHA256Hasher(cfg.Auth.PasswordSalt)

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation failed", zap.Error(err))
		return
	}

	otpGenerator := otp.NewGOTPGenerator()
	uploader := upload.NewClient(cfg.Upload.APIKey)
	dashboardCache := cache.NewDashboardCache(redisClient, cfg.Cache.DashboardTTL)

	// Queue client for background jobs
	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Error("error when closing asynq client", zap.Error(err))
		}
	}()
	queueClient.SetClient(asynqClient)

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:         cfg,
		Hasher:         hasher,
		TokenManager:   tokenManager,
		OtpGenerator:   otpGenerator,
		EmailSender:    emailSender,
		Uploader:       uploader,
		DashboardCache: dashboardCache,
		Repos:          repos,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// Background workers over asynq
	workers := worker.NewWorkers(worker.Deps{
		EmailProvider: emailSender,
		Config:        cfg,
	})
	queueServer, queueMux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := queueServer.Run(queueMux); err != nil {
			logger.Error("error occurred while running queue server", zap.Error(err))
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

	queueServer.Shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	logger.Info("app stopped")
}
