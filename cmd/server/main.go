package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"parkflow/internal/app"
	"parkflow/internal/backend"
	"parkflow/internal/config"
	"parkflow/internal/domain"
	"parkflow/internal/geo"
	"parkflow/internal/handler"
	"parkflow/internal/live"
	"parkflow/internal/logging"
	"parkflow/internal/service"
	"parkflow/internal/session"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST so Redis can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	server := wireServer(redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	logger := logging.NewLogger(cfg.LogLevel)

	// Backend API client and session storage.
	apiClient := backend.NewClient(cfg.Backend.BaseURL, logger)
	sessionStore := session.NewRedisStore(redisClient, session.DefaultTTL)

	// Geocoding.
	geocoder := geo.NewNominatimClient(cfg.Geocoder.Endpoint)
	fallback := domain.GeoPoint{Lat: cfg.Map.FallbackLat, Lng: cfg.Map.FallbackLng}

	// Live subscriptions.
	watch := live.NewWatch()

	// Initialize services.
	authService := service.NewAuthService(apiClient, sessionStore, logger)
	searchService := service.NewSearchService(apiClient, logger)
	bookingService := service.NewBookingService(apiClient, logger)
	spaceService := service.NewSpaceService(apiClient, logger)
	reportService := service.NewReportService(apiClient)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService, searchService, watch)
	searchHandler := handler.NewSearchHandler(searchService, authService, watch)
	bookingHandler := handler.NewBookingHandler(bookingService, authService)
	spaceHandler := handler.NewSpaceHandler(spaceService, authService)
	geoHandler := handler.NewGeoHandler(geocoder, geocoder, apiClient, authService)
	reportHandler := handler.NewReportHandler(reportService, authService)
	liveHandler := handler.NewLiveHandler(watch, bookingService, geocoder, fallback, logger)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    authHandler,
		SearchHandler:  searchHandler,
		BookingHandler: bookingHandler,
		SpaceHandler:   spaceHandler,
		GeoHandler:     geoHandler,
		ReportHandler:  reportHandler,
		LiveHandler:    liveHandler,
		SessionStore:   sessionStore,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
