package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/middleware"
	"github.com/florenciacomuzzi/amp-report/internal/services"
)

// RouterConfig carries everything NewRouter wires into routes.
type RouterConfig struct {
	Log             *logger.Logger
	Verifier        middleware.TokenVerifier
	Health          *HealthHandler
	Auth            services.AuthService
	Properties      services.PropertyService
	TenantProfiles  services.TenantProfileService
	Amenities       services.AmenityService
	Recommendations services.RecommendationService
	Analyses        services.AnalysisService
	CORSOrigins     []string
}

// NewRouter builds the gin engine with the middleware chain
// RequestID -> Logger -> Recovery -> CORS -> Metrics and every API route.
// Auth, health, metrics and catalog reads are public; everything else
// requires a bearer token.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Log))
	router.Use(middleware.Recovery(cfg.Log))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.Metrics())

	router.GET("/health", cfg.Health.Health)
	router.GET("/health/ready", cfg.Health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(cfg.Auth)
	propertyHandler := NewPropertyHandler(cfg.Properties)
	profileHandler := NewTenantProfileHandler(cfg.TenantProfiles)
	amenityHandler := NewAmenityHandler(cfg.Amenities)
	recommendationHandler := NewRecommendationHandler(cfg.Recommendations, cfg.TenantProfiles)
	analysisHandler := NewAnalysisHandler(cfg.Analyses)

	requireAuth := middleware.Auth(cfg.Verifier)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", cfg.Health.Info)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		amenities := v1.Group("/amenities")
		{
			amenities.GET("", amenityHandler.List)
			amenities.GET("/categories", amenityHandler.Categories)
			amenities.GET("/:id", amenityHandler.Get)
			amenities.POST("/cost-estimates", recommendationHandler.CostEstimates)
			amenities.POST("", requireAuth, amenityHandler.Create)
			amenities.PUT("/:id", requireAuth, amenityHandler.Update)
			amenities.DELETE("/:id", requireAuth, amenityHandler.Delete)
		}

		properties := v1.Group("/properties", requireAuth)
		{
			properties.POST("", propertyHandler.Create)
			properties.GET("", propertyHandler.List)
			properties.GET("/:id", propertyHandler.Get)
			properties.PUT("/:id", propertyHandler.Update)
			properties.DELETE("/:id", propertyHandler.Delete)
			properties.GET("/:id/rent-estimate", propertyHandler.RentEstimate)
			properties.GET("/:id/tenant-profile", profileHandler.GetByProperty)
			properties.GET("/:id/analyses", analysisHandler.ListByProperty)
		}

		profiles := v1.Group("/tenant-profiles", requireAuth)
		{
			profiles.POST("", profileHandler.Create)
			profiles.POST("/chat", profileHandler.Chat)
			profiles.GET("/:id", profileHandler.Get)
			profiles.PATCH("/:id", profileHandler.Update)
			profiles.DELETE("/:id", profileHandler.Delete)
			profiles.GET("/:id/recommendations", recommendationHandler.Recommendations)
		}

		analyses := v1.Group("/analyses", requireAuth)
		{
			analyses.POST("", analysisHandler.Create)
			analyses.GET("/:id", analysisHandler.Get)
			analyses.PATCH("/:id/status", analysisHandler.UpdateStatus)
		}
	}

	return router
}
