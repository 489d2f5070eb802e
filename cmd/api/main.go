package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/jewelmandi/jewelmandi-backend/api/routes"
	authsvc "github.com/jewelmandi/jewelmandi-backend/internal/auth"
	"github.com/jewelmandi/jewelmandi-backend/internal/catalog"
	"github.com/jewelmandi/jewelmandi-backend/internal/customers"
	"github.com/jewelmandi/jewelmandi-backend/internal/dashboard"
	"github.com/jewelmandi/jewelmandi-backend/internal/inventory"
	"github.com/jewelmandi/jewelmandi-backend/internal/orders"
	"github.com/jewelmandi/jewelmandi-backend/internal/variants"
	"github.com/jewelmandi/jewelmandi-backend/pkg/auth/session"
	"github.com/jewelmandi/jewelmandi-backend/pkg/config"
	"github.com/jewelmandi/jewelmandi-backend/pkg/db"
	"github.com/jewelmandi/jewelmandi-backend/pkg/logger"
	"github.com/jewelmandi/jewelmandi-backend/pkg/migrate"
	"github.com/jewelmandi/jewelmandi-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	conn := dbClient.DB()

	authService, err := authsvc.NewService(authsvc.NewRepository(conn), sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(catalog.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	variantService, err := variants.NewService(variants.NewRepository(conn), catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create variant service", err)
		os.Exit(1)
	}
	customerService, err := customers.NewService(customers.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(orders.NewRepository(conn), dbClient, inventory.NewMover(), customerService)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}
	dashboardService, err := dashboard.NewService(conn)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, routes.Services{
			Auth:      authService,
			Catalog:   catalogService,
			Variants:  variantService,
			Customers: customerService,
			Orders:    orderService,
			Dashboard: dashboardService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
