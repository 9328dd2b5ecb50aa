package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"account-service/internal/config"
	"account-service/internal/handlers"
	"account-service/internal/ledger"
	"account-service/internal/middleware"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	store := ledger.New(logger)
	if cfg.IsDevelopment() {
		ownerID := store.SeedSampleData()
		logger.Info("development mode: sample data available", "owner_id", ownerID)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))

	accountHandler := handlers.NewAccountHandler(store)
	transactionHandler := handlers.NewTransactionHandler(store)
	healthHandler := handlers.NewHealthCheckHandler()

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/accounts")
	api.POST("", accountHandler.CreateAccount)
	api.GET("", accountHandler.ListAccounts)
	api.GET("/version", accountHandler.GetVersion)
	api.GET("/owner/:ownerId", accountHandler.GetAccountsByOwner)
	api.GET("/exists/:accountId/:ownerId", accountHandler.CheckAccountExists)
	api.POST("/transactions", transactionHandler.RegisterTransaction)
	api.POST("/transfer", transactionHandler.Transfer)
	api.POST("/statement", transactionHandler.GetStatement)
	api.GET("/:id", accountHandler.GetAccount)
	api.PUT("/:id", accountHandler.UpdateAccount)
	api.PUT("/:id/full", accountHandler.ReplaceAccount)
	api.DELETE("/:id", accountHandler.DeleteAccount)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", "addr", server.Addr, "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
