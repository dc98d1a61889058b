package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/api/http"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/api/http/handlers"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/assignment"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/auth"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/config"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/events"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/observability"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/persistence"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/repository"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/service"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/sla"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	pool := pg.PoolHandle()
	itemRepo := repository.NewWorkItemRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	recordRepo := repository.NewAssignmentRecordRepository(pool)
	slaConfigRepo := repository.NewSlaConfigRepository(pool, redis.ClientHandle(), cfg.Sla.ConfigCacheTTL(), logger)

	tracker := sla.NewTracker(sla.TrackerDependencies{
		ItemRepo:   itemRepo,
		ConfigRepo: slaConfigRepo,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	}, cfg.Sla.PollInterval())
	scheduler := sla.NewScheduler(tracker, cfg.Sla.PollInterval(), metrics, logger)

	resolver := assignment.NewResolver(assignment.ResolverDependencies{
		CategoryRepo: categoryRepo,
		UserRepo:     userRepo,
		Metrics:      metrics,
		Logger:       logger,
	})
	resolver.Register(assignment.NewRotationStrategy(userRepo, recordRepo))
	resolver.Register(assignment.NewLoadAwareStrategy(userRepo))
	resolver.Register(assignment.NewLocationStrategy(userRepo))

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartSlaWorker(ctx, scheduler, notificationService, cfg.Sla.Enabled)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Sla:            handlers.NewSlaHandler(scheduler, metrics),
		Assignments:    handlers.NewAssignmentHandler(resolver, recordRepo, dispatcher, logger),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if cfg.Sla.Enabled {
		scheduler.Stop()
	}
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
