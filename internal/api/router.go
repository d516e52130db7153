package api

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/inkhouse/tattoo-booking-backend/internal/auth"
	availabilityHttp "github.com/inkhouse/tattoo-booking-backend/internal/availability/http"
	"github.com/inkhouse/tattoo-booking-backend/internal/booking"
	bookingHttp "github.com/inkhouse/tattoo-booking-backend/internal/booking/http"
	"github.com/inkhouse/tattoo-booking-backend/internal/client"
	clientHttp "github.com/inkhouse/tattoo-booking-backend/internal/client/http"
	"github.com/inkhouse/tattoo-booking-backend/internal/pricing"
	pricingHttp "github.com/inkhouse/tattoo-booking-backend/internal/pricing/http"
)

// Config holds the services the router exposes.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *slog.Logger

	Resolver       availabilityHttp.Resolver
	PricingService pricing.Service
	BookingService booking.Service
	ClientService  client.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()

	// Global Middleware:
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	// - RequestLogger: Logs request information through slog.
	r.Use(gin.Recovery(), RequestLogger(logger))

	// Configure CORS (Cross-Origin Resource Sharing).
	origins := allowedOrigins(cfg.IsProduction, cfg.ProdOrigins)
	config := cors.DefaultConfig()
	config.AllowOrigins = origins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	config.ExposeHeaders = []string{"Warning"}
	r.Use(cors.New(config))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the token carries the admin role.
	adminMiddleware := auth.AdminRequired()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	streams := availabilityHttp.NewStreamServer(origins, logger)
	availabilityHandler := availabilityHttp.NewHandler(cfg.Resolver, streams)
	pricingHandler := pricingHttp.NewHandler(cfg.PricingService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	clientHandler := clientHttp.NewHandler(cfg.ClientService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		pricingHttp.RegisterRoutes(v1, pricingHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		clientHttp.RegisterRoutes(v1, clientHandler, authMiddleware, adminMiddleware)
	}

	return r
}

func allowedOrigins(isProduction bool, prodOrigins string) []string {
	if !isProduction {
		return []string{"http://localhost:8081", "http://localhost:19006"}
	}
	var origins []string
	for _, o := range strings.Split(prodOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
