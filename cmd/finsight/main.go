package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finsight-pos/finsight-pos/internal/app"
	"github.com/finsight-pos/finsight-pos/internal/auth"
	"github.com/finsight-pos/finsight-pos/internal/catalog/categories"
	"github.com/finsight-pos/finsight-pos/internal/catalog/products"
	"github.com/finsight-pos/finsight-pos/internal/dashboard"
	"github.com/finsight-pos/finsight-pos/internal/observability"
	"github.com/finsight-pos/finsight-pos/internal/platform/cache"
	"github.com/finsight-pos/finsight-pos/internal/platform/db"
	"github.com/finsight-pos/finsight-pos/internal/restock"
	"github.com/finsight-pos/finsight-pos/internal/sales"
	"github.com/finsight-pos/finsight-pos/internal/settings"
	"github.com/finsight-pos/finsight-pos/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	usersRepo := users.NewRepository(pool)
	authService := auth.NewService(usersRepo)
	tokens := auth.NewTokenManager(redisClient, cfg.TokenTTL)
	authHandler := auth.NewHandler(logger, authService, tokens)
	authMiddleware := &auth.Middleware{Tokens: tokens, Logger: logger}

	categoriesRepo := categories.NewRepository(pool)
	categoriesHandler := categories.NewHandler(logger, categories.NewService(categoriesRepo))

	productsRepo := products.NewRepository(pool)
	productsHandler := products.NewHandler(logger, products.NewService(productsRepo))

	restockHandler := restock.NewHandler(logger, restock.NewService(restock.NewRepository(pool)))

	salesHandler := sales.NewHandler(logger, sales.NewService(sales.NewRepository(pool), metrics))

	statsCache := dashboard.NewCache(redisClient, cfg.StatsCacheTTL)
	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), statsCache, logger, cfg.LowStockThreshold)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	settingsStore := settings.NewStore(pool, usersRepo, categoriesRepo, productsRepo)
	settingsHandler := settings.NewHandler(logger, settings.NewService(settingsStore))

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		ProductsHandler:   productsHandler,
		CategoriesHandler: categoriesHandler,
		RestockHandler:    restockHandler,
		SalesHandler:      salesHandler,
		DashboardHandler:  dashboardHandler,
		SettingsHandler:   settingsHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
