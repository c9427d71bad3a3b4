package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/stockwatchhq/stockwatch-backend/api/routes"
	"github.com/stockwatchhq/stockwatch-backend/internal/alerts"
	"github.com/stockwatchhq/stockwatch-backend/internal/bundles"
	"github.com/stockwatchhq/stockwatch-backend/internal/companies"
	"github.com/stockwatchhq/stockwatch-backend/internal/inventory"
	"github.com/stockwatchhq/stockwatch-backend/internal/products"
	"github.com/stockwatchhq/stockwatch-backend/internal/suppliers"
	"github.com/stockwatchhq/stockwatch-backend/internal/warehouses"
	"github.com/stockwatchhq/stockwatch-backend/pkg/config"
	"github.com/stockwatchhq/stockwatch-backend/pkg/db"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
	"github.com/stockwatchhq/stockwatch-backend/pkg/migrate"
	"github.com/stockwatchhq/stockwatch-backend/pkg/redis"
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

	// The report cache is optional; the API serves uncached reports without it.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured; alert report caching disabled")
	}

	companyRepo := companies.NewRepository(dbClient.DB())
	warehouseRepo := warehouses.NewRepository(dbClient.DB())
	supplierRepo := suppliers.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	inventoryRepo := inventory.NewRepository(dbClient.DB())
	bundleRepo := bundles.NewRepository(dbClient.DB())
	alertRepo := alerts.NewRepository(dbClient.DB())

	companyService, err := companies.NewService(companyRepo)
	requireService(logg, "company", err)
	warehouseService, err := warehouses.NewService(warehouseRepo, companyRepo)
	requireService(logg, "warehouse", err)
	supplierService, err := suppliers.NewService(supplierRepo, productRepo)
	requireService(logg, "supplier", err)
	productService, err := products.NewService(productRepo, dbClient, companyRepo, warehouseRepo, inventoryRepo)
	requireService(logg, "product", err)
	inventoryService, err := inventory.NewService(inventoryRepo, dbClient)
	requireService(logg, "inventory", err)
	bundleService, err := bundles.NewService(bundleRepo, productRepo)
	requireService(logg, "bundle", err)

	alertParams := alerts.ServiceParams{
		Repo:         alertRepo,
		CompanyRepo:  companyRepo,
		SupplierRepo: supplierRepo,
		Logger:       logg,
		Defaults:     cfg.Alerts,
	}
	if redisClient != nil {
		alertParams.Cache = redisClient
	}
	alertService, err := alerts.NewService(alertParams)
	requireService(logg, "alert", err)

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

	var redisPinger redis.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisPinger,
			companyService,
			warehouseService,
			supplierService,
			productService,
			inventoryService,
			bundleService,
			alertService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
