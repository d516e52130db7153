package app

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/inkhouse/tattoo-booking-backend/internal/api"
	"github.com/inkhouse/tattoo-booking-backend/internal/auth"
	"github.com/inkhouse/tattoo-booking-backend/internal/availability"
	"github.com/inkhouse/tattoo-booking-backend/internal/booking"
	"github.com/inkhouse/tattoo-booking-backend/internal/client"
	"github.com/inkhouse/tattoo-booking-backend/internal/pricing"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	Logger       *slog.Logger

	// Redis is optional; nil disables the pricing rules cache.
	Redis           *redis.Client
	PricingCacheTTL time.Duration

	// Publisher receives booking events; nil drops them.
	Publisher booking.EventPublisher

	Availability availability.Options
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Hub        *booking.Hub
	Listener   *booking.PgListener
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Change Feed
	hub := booking.NewHub()
	listener := booking.NewPgListener(cfg.DBPool, hub, logger)

	// Booking Storage
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Availability Module
	availabilityOpts := cfg.Availability
	availabilityOpts.Logger = logger
	resolver := availability.NewResolver(bookingRepo, hub, availabilityOpts)

	// Pricing Module
	var rulesCache pricing.Cache = pricing.NopCache{}
	if cfg.Redis != nil {
		rulesCache = pricing.NewRedisCache(cfg.Redis, cfg.PricingCacheTTL)
	}
	pricingRepo := pricing.NewPgxRepository(cfg.DBPool)
	pricingService := pricing.NewService(pricingRepo, rulesCache, logger)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, resolver, pricingService, cfg.Publisher, logger)

	// Client Module
	clientRepo := client.NewPgxRepository(cfg.DBPool)
	clientService := client.NewService(clientRepo)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         logger,
		Resolver:       resolver,
		PricingService: pricingService,
		BookingService: bookingService,
		ClientService:  clientService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Hub:        hub,
		Listener:   listener,
	}
}
