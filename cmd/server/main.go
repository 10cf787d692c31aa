package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/api"
	"github.com/jstittsworth/draft-diagnostics/internal/fantasy"
	"github.com/jstittsworth/draft-diagnostics/internal/matching"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/internal/providers"
	"github.com/jstittsworth/draft-diagnostics/internal/services"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetLogger().Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Redis is optional; without it every lookup is a cache miss
	ctx := context.Background()
	cacheService, err := services.NewCacheServiceFromURL(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cacheService.Close()
	if !cacheService.Enabled() {
		log.Warn("REDIS_URL not set, caching disabled")
	}

	// Initialize services
	breaker := services.NewCircuitBreakerService(cfg.CircuitBreakerThreshold, 60*time.Second, log)
	providerFactory := providers.NewFactory(cfg, cacheService, breaker, log)
	importer := services.NewLeagueImportService(
		db,
		adp.NewRepository(db),
		matching.New(cfg.NameMatchThreshold),
		services.KeeperSettingsFromConfig(cfg),
		cacheService,
		log,
	)

	// Background league sync
	if cfg.EnableBackgroundJobs {
		leagueSync := services.NewLeagueSyncService(db, importer, func(league models.League) (fantasy.LeagueProvider, error) {
			return providerFactory.New(fantasy.Platform(league.Platform), league.ExternalID, league.Season)
		}, log, cfg.LeagueSyncSchedule, 2*cfg.ExternalAPITimeout)
		if err := leagueSync.Start(); err != nil {
			log.Errorf("Failed to start league sync: %v", err)
		}
		defer leagueSync.Stop()
	}

	router := api.NewRouter(api.Dependencies{
		DB:        db,
		Cache:     cacheService,
		Breaker:   breaker,
		Importer:  importer,
		Providers: providerFactory,
		Config:    cfg,
		Logger:    log,
	})

	// Log all registered routes
	log.Info("=== REGISTERED ROUTES ===")
	for _, route := range router.Routes() {
		log.Infof("%s %s", route.Method, route.Path)
	}
	log.Info("=========================")

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.WithService(log, "draft-diagnostics").WithField("env", cfg.Env).Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
