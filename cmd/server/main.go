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

	"github.com/gin-gonic/gin"

	"github.com/florenciacomuzzi/amp-report/internal/auth"
	"github.com/florenciacomuzzi/amp-report/internal/config"
	"github.com/florenciacomuzzi/amp-report/internal/database"
	"github.com/florenciacomuzzi/amp-report/internal/handlers"
	"github.com/florenciacomuzzi/amp-report/internal/llm"
	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/rent"
	"github.com/florenciacomuzzi/amp-report/internal/repository"
	"github.com/florenciacomuzzi/amp-report/internal/scoring"
	"github.com/florenciacomuzzi/amp-report/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(logger.Options{Env: cfg.Server.Env, Level: cfg.Server.LogLevel})
	log.Info("Starting amp-report API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Repositories
	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	profileRepo := repository.NewTenantProfileRepository(db)
	amenityRepo := repository.NewAmenityRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	// Scoring
	recommenderCfg := scoring.DefaultRecommenderConfig()
	recommenderCfg.MaxResults = cfg.Scoring.MaxRecommendations
	recommenderCfg.MinScore = cfg.Scoring.MinScore
	recommenderCfg.ROI = scoring.ROIConfig{
		UnitsAffected: cfg.Scoring.UnitsAffected,
		Occupancy:     cfg.Scoring.Occupancy,
	}
	recommender := scoring.NewRecommender(recommenderCfg)
	scorer := scoring.NewConfidenceScorer(scoring.DefaultConfidenceConfig())

	// The profile assistant stays nil without an API key, which turns the
	// chat endpoint into a 503.
	var assistant services.ProfileAssistant
	if cfg.LLM.Enabled() {
		client, err := llm.NewClient(cfg.LLM, log)
		if err != nil {
			log.Fatal("Failed to create LLM client", err, nil)
		}
		assistant = llm.NewProfiler(client, log)
		log.Info("Profile chat enabled", map[string]interface{}{"model": client.Model()})
	} else {
		log.Warn("OPENAI_API_KEY not set, profile chat disabled", nil)
	}

	// Services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	authService := services.NewAuthService(userRepo, tokens, log)
	propertyService := services.NewPropertyService(propertyRepo, rent.NewEstimator(), log)
	profileService := services.NewTenantProfileService(profileRepo, propertyRepo, scorer, assistant, log)
	amenityService := services.NewAmenityService(amenityRepo, log)
	recommendationService := services.NewRecommendationService(profileRepo, amenityRepo, recommender, log)
	analysisService := services.NewAnalysisService(analysisRepo, propertyRepo, profileRepo, recommendationService, log)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		Log:             log,
		Verifier:        tokens,
		Health:          handlers.NewHealthHandler(db, cfg.Server.Env, assistant != nil),
		Auth:            authService,
		Properties:      propertyService,
		TenantProfiles:  profileService,
		Amenities:       amenityService,
		Recommendations: recommendationService,
		Analyses:        analysisService,
		CORSOrigins:     cfg.CORS.Origins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
