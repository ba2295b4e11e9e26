package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/notify"
	"storefront/internal/report"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/shipping"
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
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	addressRepo := repository.NewAddressRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)

	// Initialize notifications
	mailer := notify.NewMailer(cfg.SMTP, logger)
	broadcaster := notify.NewBroadcaster(cfg.Kafka, logger)
	defer func() {
		if err := broadcaster.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close broadcaster")
		}
	}()
	notifier := notify.NewNotifier(mailer, broadcaster, 0, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, addressRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, cartRepo, addressRepo, productRepo, shipping.DefaultRates(), notifier, logger)
	orderService := service.NewOrderService(orderRepo, addressRepo, notifier, logger)
	userService := service.NewUserService(userRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, logger)

	// Initialize daily report scheduler
	var scheduler *report.Scheduler
	if cfg.Report.ScheduleEnabled {
		loc := cfg.Report.Location()
		archiver := report.NewArchiver(ctx, cfg.S3, cfg.Report.ArchiveDir, logger)
		runner := report.NewRunner(report.NewBuilder(orderRepo, loc, logger), userRepo, mailer, archiver, logger)

		scheduler, err = report.NewScheduler(cfg.Report.Schedule, loc, runner, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize report scheduler: %w", err)
		}
		scheduler.Start()
	}

	// Initialize router
	mux := router.New(router.Handlers{
		Product:    handler.NewProductHandler(productService, logger),
		Review:     handler.NewReviewHandler(reviewService, logger),
		Checkout:   handler.NewCheckoutHandler(checkoutService, cartService, logger),
		Cart:       handler.NewCartHandler(cartService, logger),
		Order:      handler.NewOrderHandler(orderService, logger),
		AdminOrder: handler.NewAdminOrderHandler(orderService, logger),
		AdminUser:  handler.NewAdminUserHandler(userService, logger),
	}, []byte(cfg.Auth.JWTSecret), logger)

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

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if scheduler != nil {
			scheduler.Stop(shutdownCtx)
		}

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		// Requests are drained; deliver what they queued.
		notifier.Close()

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
