package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/carpool/internal/cache"
	"github.com/example/carpool/internal/config"
	"github.com/example/carpool/internal/database"
	"github.com/example/carpool/internal/geo"
	"github.com/example/carpool/internal/handler"
	"github.com/example/carpool/internal/middleware"
	"github.com/example/carpool/internal/repository"
	"github.com/example/carpool/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize New Relic (optional)
	var nrApp *newrelic.Application
	if cfg.NewRelicEnabled && cfg.NewRelicLicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelicAppName),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
			newrelic.ConfigInfoLogger(os.Stdout),
		)
		if err != nil {
			log.Printf("Warning: Failed to initialize New Relic: %v", err)
		} else {
			log.Println("New Relic initialized successfully")
			if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
				log.Printf("Warning: New Relic connection timeout: %v", err)
			}
		}
	}

	// Initialize PostgreSQL
	db, err := database.NewPostgres(
		cfg.DatabaseURL,
		cfg.DBMaxConnections,
		cfg.DBMaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis
	redis, err := database.NewRedis(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()
	log.Println("Connected to Redis")

	// Initialize external gateways
	nominatim := geo.NewNominatimClient(cfg.NominatimBaseURL, cfg.GatewayTimeout)
	osrm := geo.NewOSRMClient(cfg.OSRMBaseURL, cfg.GatewayTimeout)
	suggestionCache := cache.NewSuggestionCache(redis.Client, cfg.SuggestionCacheTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	rideRepo := repository.NewRideRepository(db.DB)
	requestRepo := repository.NewRideRequestRepository(db.DB)

	// Initialize services
	geoService := service.NewGeoService(nominatim, osrm, suggestionCache)
	pricingService := service.NewPricingService(cfg.FuelPricePerLitre, cfg.MileageKmPerLitre)
	matchingService := service.NewMatchingService(rideRepo, cfg.MatchToleranceDeg)
	rideService := service.NewRideService(rideRepo, userRepo, geoService, pricingService, matchingService)
	requestService := service.NewRequestService(requestRepo, rideRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	geoHandler := handler.NewGeoHandler(geoService)
	rideHandler := handler.NewRideHandler(rideService)
	requestHandler := handler.NewRequestHandler(requestService)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-User-ID"},
		ExposedHeaders:   []string{"Link", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// New Relic middleware
	if nrApp != nil {
		r.Use(middleware.NewRelicMiddleware(nrApp))
	}

	// Rate limiter (100 requests per minute per IP)
	rateLimiter := middleware.NewRateLimiter(redis.Client, 100, time.Minute)
	r.Use(rateLimiter.Handler)

	// Idempotency middleware
	idempotencyMw := middleware.NewIdempotencyMiddleware(redis.Client)
	r.Use(idempotencyMw.Handler)

	// Session resolution
	r.Use(middleware.Session(userRepo))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := db.Health(ctx); err != nil {
			http.Error(w, "database unhealthy", http.StatusServiceUnavailable)
			return
		}

		if err := redis.Health(ctx); err != nil {
			http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","services":{"database":"up","redis":"up"}}`))
	})

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		userHandler.RegisterRoutes(r)
		geoHandler.RegisterRoutes(r)
		rideHandler.RegisterRoutes(r)
		requestHandler.RegisterRoutes(r)
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Println("API endpoints:")
	log.Println("  POST /v1/users                  - Sign up")
	log.Println("  GET  /v1/geo/suggestions        - Location search")
	log.Println("  GET  /v1/geo/route              - Route between two points")
	log.Println("  POST /v1/rides                  - Post a ride (driver)")
	log.Println("  POST /v1/rides/search           - Match rides along a route")
	log.Println("  POST /v1/requests               - Request to join a ride")
	log.Println("  POST /v1/requests/{id}/accept   - Accept a request (driver)")
	log.Println("  POST /v1/requests/{id}/reject   - Reject a request (driver)")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped gracefully")
}
