package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/job-tracker/internal/api/http"
	"github.com/spec-kit/job-tracker/internal/api/http/handlers"
	"github.com/spec-kit/job-tracker/internal/auth"
	"github.com/spec-kit/job-tracker/internal/config"
	"github.com/spec-kit/job-tracker/internal/events"
	"github.com/spec-kit/job-tracker/internal/observability"
	"github.com/spec-kit/job-tracker/internal/persistence"
	"github.com/spec-kit/job-tracker/internal/ratelimit"
	"github.com/spec-kit/job-tracker/internal/repository"
	"github.com/spec-kit/job-tracker/internal/service"
	"github.com/spec-kit/job-tracker/internal/tracker"
	"github.com/spec-kit/job-tracker/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	observability.NewEventRecorder(metrics, logger).Register(dispatcher)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: userRepo})
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:    jobRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		JobRepo:         jobRepo,
		ApplicationRepo: applicationRepo,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})

	localLimiter := ratelimit.NewLocalLimiter(cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow())
	authLimiter := ratelimit.NewRedisLimiter(redis.Client, "ratelimit:auth:",
		cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow(), localLimiter, logger)
	worker.StartLimiterJanitor(ctx, localLimiter, cfg.RateLimit.AuthWindow(), 2*cfg.RateLimit.AuthWindow(), logger)

	var redisPinger handlers.Pinger
	if redis.Enabled() {
		redisPinger = redis
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisPinger),
		Auth:           handlers.NewAuthHandler(authService),
		Jobs:           handlers.NewJobsHandler(jobService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Tracker:        handlers.NewTrackerHandler(tracker.NewStore()),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
		AuthLimiter:    authLimiter,
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
