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

	httptransport "github.com/spec-kit/freshdesk-bridge/internal/api/http"
	"github.com/spec-kit/freshdesk-bridge/internal/api/http/handlers"
	"github.com/spec-kit/freshdesk-bridge/internal/auth"
	"github.com/spec-kit/freshdesk-bridge/internal/config"
	"github.com/spec-kit/freshdesk-bridge/internal/events"
	"github.com/spec-kit/freshdesk-bridge/internal/freshdesk"
	"github.com/spec-kit/freshdesk-bridge/internal/guard"
	"github.com/spec-kit/freshdesk-bridge/internal/observability"
	"github.com/spec-kit/freshdesk-bridge/internal/persistence"
	"github.com/spec-kit/freshdesk-bridge/internal/repository"
	"github.com/spec-kit/freshdesk-bridge/internal/service"
	"github.com/spec-kit/freshdesk-bridge/internal/worker"
)

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var submissionRepo repository.SubmissionRepository
	if pool := pg.PoolHandle(); pool != nil {
		submissionRepo = repository.NewSubmissionRepository(pool)
	}

	freshdeskClient := freshdesk.NewClient(cfg.Freshdesk, logger)
	dedupe := guard.NewDedupeGuard(redis.Client, cfg.Intake.DedupeWindow())
	limiter := guard.NewRateLimiter(redis.Client, cfg.Intake.RateLimitPerMinute, time.Minute)

	intakeService := service.NewIntakeService(service.IntakeDependencies{
		Tickets:        freshdeskClient,
		SubmissionRepo: submissionRepo,
		Dedupe:         dedupe,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Logger:         logger,
		MaxMessageLen:  cfg.Intake.MaxMessageLength,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	intakeHandler := handlers.NewIntakeHandler(intakeService, limiter, logger)
	adminHandler := handlers.NewAdminHandler(authService, submissionRepo)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Intake:         intakeHandler,
		Admin:          adminHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
