package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fleetflow/fleet-service/internal/api/http"
	"github.com/fleetflow/fleet-service/internal/api/http/handlers"
	"github.com/fleetflow/fleet-service/internal/auth"
	"github.com/fleetflow/fleet-service/internal/config"
	"github.com/fleetflow/fleet-service/internal/events"
	"github.com/fleetflow/fleet-service/internal/observability"
	"github.com/fleetflow/fleet-service/internal/persistence"
	"github.com/fleetflow/fleet-service/internal/repository"
	"github.com/fleetflow/fleet-service/internal/service"
	"github.com/fleetflow/fleet-service/internal/worker"
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
	accountRepo := repository.NewAccountRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	driverRepo := repository.NewDriverRepository(pool)
	tripRepo := repository.NewTripRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService, err := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: accountRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	fleetService := service.NewFleetService(service.FleetDependencies{
		VehicleRepo: vehicleRepo,
		DriverRepo:  driverRepo,
		ExpenseRepo: expenseRepo,
	})
	tripService := service.NewTripService(service.TripDependencies{
		TripRepo:    tripRepo,
		VehicleRepo: vehicleRepo,
		DriverRepo:  driverRepo,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(authService),
		Dashboards:     handlers.NewDashboardsHandler(authService),
		Vehicles:       handlers.NewVehiclesHandler(fleetService),
		Drivers:        handlers.NewDriversHandler(fleetService),
		Trips:          handlers.NewTripsHandler(tripService),
		Expenses:       handlers.NewExpensesHandler(fleetService),
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
