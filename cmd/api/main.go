package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/farm-helpdesk/internal/api/http"
	"github.com/spec-kit/farm-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/farm-helpdesk/internal/auth"
	"github.com/spec-kit/farm-helpdesk/internal/config"
	"github.com/spec-kit/farm-helpdesk/internal/events"
	"github.com/spec-kit/farm-helpdesk/internal/observability"
	"github.com/spec-kit/farm-helpdesk/internal/persistence"
	"github.com/spec-kit/farm-helpdesk/internal/repository"
	"github.com/spec-kit/farm-helpdesk/internal/service"
	"github.com/spec-kit/farm-helpdesk/internal/summarizer"
	"github.com/spec-kit/farm-helpdesk/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var userRepo repository.UserRepository
	var issueRepo repository.IssueRepository
	var analyticsRepo repository.AnalyticsRepository

	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		issueRepo = repository.NewIssueRepository(pool)
		analyticsRepo = repository.NewAnalyticsRepository(pool)
	} else {
		logger.Warn("running with in-memory stores; data will not survive restarts")
		memUsers := repository.NewMemoryUserRepository()
		memIssues := repository.NewMemoryIssueRepository(memUsers)
		userRepo = memUsers
		issueRepo = memIssues
		analyticsRepo = memIssues
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	issueService := service.NewIssueService(service.IssueDependencies{
		IssueRepo:  issueRepo,
		UserRepo:   userRepo,
		Summarizer: summarizer.NewGroqClient(cfg.Summarizer),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	analyticsService := service.NewAnalyticsService(analyticsRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		FarmerIssues:   handlers.NewFarmerIssuesHandler(issueService),
		AdminIssues:    handlers.NewAdminIssuesHandler(issueService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
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
