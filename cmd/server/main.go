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

	"github.com/redis/go-redis/v9"

	"github.com/inkhouse/tattoo-booking-backend/internal/app"
	"github.com/inkhouse/tattoo-booking-backend/internal/availability"
	"github.com/inkhouse/tattoo-booking-backend/internal/booking"
	"github.com/inkhouse/tattoo-booking-backend/internal/config"
	"github.com/inkhouse/tattoo-booking-backend/internal/db"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.IsProduction, cfg.LogLevel)
	slog.SetDefault(logger)

	grid := availability.DefaultGrid()
	if len(cfg.TimeSlots) > 0 {
		if grid, err = availability.ParseGrid(cfg.TimeSlots); err != nil {
			return err
		}
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Optional Redis for the pricing rules cache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = db.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	} else {
		logger.Info("REDIS_ADDR not set; pricing rules are read from the database on every request")
	}

	// Optional Kafka for booking events
	var publisher booking.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := booking.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		logger.Info("KAFKA_BROKERS not set; booking events are not published")
	}

	container := app.NewContainer(app.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		DBPool:          pool,
		JWTSecret:       cfg.JWTSecret,
		JWTTTL:          cfg.JWTAccessTokenTTL,
		Logger:          logger,
		Redis:           redisClient,
		PricingCacheTTL: cfg.PricingCacheTTL,
		Publisher:       publisher,
		Availability: availability.Options{
			Grid:               grid,
			HorizonDays:        cfg.BookingHorizonDays,
			ExcludeElapsed:     cfg.ExcludeElapsedSlots,
			OptimisticFallback: cfg.AvailabilityFallback,
		},
	})

	// Change listener feeds live availability subscriptions.
	listenerDone := make(chan struct{})
	go func() {
		defer close(listenerDone)
		if err := container.Listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("booking change listener stopped", "error", err)
		}
	}()

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.HTTPAddr, "slots", []string(grid))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for Ctrl+C or a listen failure
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		stop()
		<-listenerDone
		return err
	}

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", "error", err)
	}
	<-listenerDone

	logger.Info("server exited gracefully")
	return nil
}

func newLogger(isProduction bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
