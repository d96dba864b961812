package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/upm-platform/complaint-service/internal/api/http"
	"github.com/upm-platform/complaint-service/internal/api/http/handlers"
	"github.com/upm-platform/complaint-service/internal/auth"
	"github.com/upm-platform/complaint-service/internal/config"
	"github.com/upm-platform/complaint-service/internal/events"
	"github.com/upm-platform/complaint-service/internal/observability"
	"github.com/upm-platform/complaint-service/internal/persistence"
	"github.com/upm-platform/complaint-service/internal/repository"
	"github.com/upm-platform/complaint-service/internal/service"
	"github.com/upm-platform/complaint-service/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	complaintRepo := repository.NewComplaintRepository(pool)
	responseRepo := repository.NewResponseRepository(pool)

	sessions := auth.NewRedisSessionStore(redis.Client, cfg.Auth.SessionTTL())
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: userRepo,
		Sessions: sessions,
	})
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaintRepo,
		ResponseRepo:  responseRepo,
		UserRepo:      userRepo,
		Dispatcher:    dispatcher,
		Logger:        logger,
		DailyLimit:    cfg.Complaints.DailyLimit,
		MinFieldLen:   cfg.Complaints.MinFieldLen,
	})
	responseService := service.NewResponseService(service.ResponseDependencies{
		ComplaintRepo:  complaintRepo,
		ResponseRepo:   responseRepo,
		Dispatcher:     dispatcher,
		MinResponseLen: cfg.Complaints.MinResponseLen,
		RatingMin:      cfg.Complaints.RatingMin,
		RatingMax:      cfg.Complaints.RatingMax,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	sessionMiddleware := auth.NewSessionMiddleware(sessions, userRepo)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:       handlers.NewAuthHandler(authService, cfg.Auth.SessionTTL()),
		Complaints: handlers.NewComplaintsHandler(complaintService, responseService),
		Admin:      handlers.NewAdminHandler(complaintService, responseService),
		Session:    sessionMiddleware,
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
