package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/AlexMorrigan04/pilotforce-api/internal/api/http"
	"github.com/AlexMorrigan04/pilotforce-api/internal/api/http/handlers"
	"github.com/AlexMorrigan04/pilotforce-api/internal/auth"
	"github.com/AlexMorrigan04/pilotforce-api/internal/config"
	"github.com/AlexMorrigan04/pilotforce-api/internal/events"
	"github.com/AlexMorrigan04/pilotforce-api/internal/observability"
	"github.com/AlexMorrigan04/pilotforce-api/internal/persistence"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
	"github.com/AlexMorrigan04/pilotforce-api/internal/session"
	"github.com/AlexMorrigan04/pilotforce-api/internal/worker"
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
	companyRepo := repository.NewCompanyRepository(pool)
	assetRepo := repository.NewAssetRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)

	sessions := session.NewManager(session.NewRedisStore(redis.Client), cfg.Auth.RefreshTokenTTLHours)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		CompanyRepo: companyRepo,
		Sessions:    sessions,
	})
	userService := service.NewUserService(userRepo, dispatcher)
	companyService := service.NewCompanyService(companyRepo, userRepo)
	assetService := service.NewAssetService(assetRepo, dispatcher)
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo:  bookingRepo,
		AssetRepo:    assetRepo,
		ResourceRepo: resourceRepo,
		Dispatcher:   dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)
	reminderRunner := worker.StartReminderWorker(cfg.Reminder, bookingService, logger)
	if reminderRunner != nil {
		defer reminderRunner.Stop()
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Assets:         handlers.NewAssetsHandler(assetService),
		Bookings:       handlers.NewBookingsHandler(bookingService),
		CompanyUsers:   handlers.NewCompanyUsersHandler(userService),
		AdminUsers:     handlers.NewAdminUsersHandler(userService),
		AdminCompanies: handlers.NewAdminCompaniesHandler(companyService),
		AdminBookings:  handlers.NewAdminBookingsHandler(bookingService),
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
