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

	"trimmers-api/internal/auth"
	"trimmers-api/internal/bootstrap"
	"trimmers-api/internal/config"
	"trimmers-api/internal/handler"
	"trimmers-api/internal/middleware"
	"trimmers-api/internal/router"
	"trimmers-api/internal/service"
	"trimmers-api/internal/upload"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("store", cfg.Store.Driver).
		Str("upload", cfg.Upload.Driver).
		Msg("starting trimmers API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	sink, uploadDir, err := bootstrap.OpenSink(ctx, cfg, logger)
	if err != nil {
		return err
	}
	uploader := upload.NewImageUploader(sink, cfg.Upload.MaxBytes, logger)

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token manager: %w", err)
	}

	// Initialize services
	productService := service.NewProductService(store.Products, store.Reviews, uploader, logger)
	reviewService := service.NewReviewService(store.Reviews, store.Products, logger)
	authService := service.NewAuthService(store.Users, tokens, logger)
	orderService := service.NewOrderService(store.Orders, store.Products, service.NewFakePaymentProcessor(), logger)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize router
	mux := router.New(router.Options{
		Products:  handler.NewProductHandler(productService, logger).WithMaxImageBytes(cfg.Upload.MaxBytes),
		Reviews:   handler.NewReviewHandler(reviewService, logger),
		Auth:      handler.NewAuthHandler(authService, cfg.Auth.CookieSecure, logger),
		Orders:    handler.NewOrderHandler(orderService, logger),
		Tokens:    tokens,
		Metrics:   middleware.NewHTTPMetrics(reg),
		Gatherer:  reg,
		UploadDir: uploadDir,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
