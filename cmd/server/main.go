package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/4ndreams/GPS-sub000/config"
	"github.com/4ndreams/GPS-sub000/internal/app/controller"
	"github.com/4ndreams/GPS-sub000/internal/app/repository"
	"github.com/4ndreams/GPS-sub000/internal/app/service"
	"github.com/4ndreams/GPS-sub000/internal/db"
	"github.com/4ndreams/GPS-sub000/internal/middleware"
	"github.com/4ndreams/GPS-sub000/internal/router"
	"github.com/4ndreams/GPS-sub000/internal/scheduler"
	"github.com/4ndreams/GPS-sub000/internal/storage"
	"github.com/4ndreams/GPS-sub000/internal/validation"
	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"github.com/4ndreams/GPS-sub000/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "console"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	if cfg.IsProduction() {
		logFormat = "json"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: !cfg.IsProduction(),
	})

	logger.Info("Starting GPS Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := validation.Register(); err != nil {
		logger.Fatal("Failed to register validators", err)
	}

	// Redis is optional; without it logout does not revoke tokens
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	quoteRepo := repository.NewQuoteRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, db.GetDB(), cfg.Shop.TaxRate)
	quoteService := service.NewQuoteService(quoteRepo, productRepo, cfg.Shop.TaxRate, cfg.Shop.QuoteValidity)
	adminService := service.NewAdminService(userRepo, orderRepo, quoteRepo, quoteService)

	s3Storage := storage.NewS3Storage(context.Background(), &cfg.S3)

	// Setup router
	r := router.NewRouter(
		controller.NewAuthController(authService),
		controller.NewProductController(productService),
		controller.NewOrderController(orderService),
		controller.NewQuoteController(quoteService),
		controller.NewAdminController(adminService),
		controller.NewRUTController(),
		controller.NewUploadController(s3Storage),
		middleware.NewAuthMiddleware(cfg.JWT.Secret),
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Quote expiry runs in Santiago time
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		logger.Warn("Time zone America/Santiago not available, using local time", map[string]interface{}{
			"error": err.Error(),
		})
		loc = time.Local
	}
	quoteScheduler := scheduler.NewQuoteExpiryScheduler(quoteService, cfg.Shop.QuoteExpiryCron, loc)
	if err := quoteScheduler.Start(); err != nil {
		logger.Fatal("Failed to start quote expiry scheduler", err)
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	quoteScheduler.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
