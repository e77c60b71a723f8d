package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"parkflow/internal/domain"
	"parkflow/internal/handler"
	"parkflow/internal/middleware"
	"parkflow/internal/session"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	SearchHandler  *handler.SearchHandler
	BookingHandler *handler.BookingHandler
	SpaceHandler   *handler.SpaceHandler
	GeoHandler     *handler.GeoHandler
	ReportHandler  *handler.ReportHandler
	LiveHandler    *handler.LiveHandler
	SessionStore   session.Store
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}
	router.Use(middleware.SessionMiddleware(deps.SessionStore))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/logout", deps.AuthHandler.Logout)
		}

		// Public search: browsing works before login, booking doesn't.
		v1.POST("/search", deps.SearchHandler.Search)
		v1.GET("/search/results", deps.SearchHandler.Results)

		// Picker lookups.
		geo := v1.Group("/geo")
		{
			geo.GET("/reverse", deps.GeoHandler.Reverse)
			geo.GET("/suggest", deps.GeoHandler.Suggest)
			geo.POST("/geocode", deps.GeoHandler.Geocode)
		}

		// Authenticated routes.
		authed := v1.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.GET("/me", deps.AuthHandler.Me)
			authed.POST("/me/location", deps.SearchHandler.SaveLocation)
			authed.POST("/search/nearby", deps.SearchHandler.Nearby)

			authed.GET("/bookings", deps.BookingHandler.List)
			authed.POST("/bookings", deps.BookingHandler.Create)
			authed.PATCH("/bookings/:id/:action", deps.BookingHandler.Act)

			authed.GET("/live", deps.LiveHandler.Serve)
		}

		// Provider routes.
		provider := v1.Group("")
		provider.Use(middleware.RequireRoles(domain.RoleProvider, domain.RoleAdmin))
		{
			provider.GET("/spaces", deps.SpaceHandler.List)
			provider.POST("/spaces", deps.SpaceHandler.Create)
			provider.GET("/spaces/:id/availability", deps.SpaceHandler.Availability)
			provider.POST("/spaces/:id/availability", deps.SpaceHandler.AddAvailability)
			provider.GET("/reports/provider/monthly", deps.ReportHandler.Monthly)
		}

		// Admin routes.
		admin := v1.Group("")
		admin.Use(middleware.RequireRoles(domain.RoleAdmin))
		{
			admin.GET("/admin/overview", deps.ReportHandler.Overview)
		}
	}

	return router
}
