package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/api/handlers"
	"github.com/jstittsworth/draft-diagnostics/internal/api/middleware"
	"github.com/jstittsworth/draft-diagnostics/internal/assistant"
	"github.com/jstittsworth/draft-diagnostics/internal/draft"
	"github.com/jstittsworth/draft-diagnostics/internal/matching"
	"github.com/jstittsworth/draft-diagnostics/internal/services"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
)

// Dependencies are the long-lived services shared by the HTTP layer and the
// background jobs
type Dependencies struct {
	DB        *database.DB
	Cache     *services.CacheService
	Breaker   *services.CircuitBreakerService
	Importer  *services.LeagueImportService
	Providers handlers.ProviderFactory
	Config    *config.Config
	Logger    *logrus.Logger
}

// NewRouter builds the engine with middleware, /health and the /api/v1 routes
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.CORS(deps.Config.CorsOrigins))

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache, deps.Breaker)
	router.GET("/health", healthHandler.GetHealth)

	apiV1 := router.Group("/api/v1")
	SetupRoutes(apiV1, deps)

	return router
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, deps Dependencies) {
	cfg := deps.Config
	matcher := matching.New(cfg.NameMatchThreshold)
	repo := adp.NewRepository(deps.DB)

	// Initialize services
	responder := assistant.NewResponder(repo, matcher, cfg.LeagueSize)
	aiService := services.NewAIHelperService(deps.DB, responder, deps.Cache,
		time.Duration(cfg.AICacheExpiration)*time.Second, deps.Logger)
	draftService := services.NewDraftAnalysisService(deps.DB, draft.Weights{
		ADP:        cfg.DraftADPWeight,
		Projection: cfg.DraftProjectionWeight,
	}, deps.Logger)

	// Initialize handlers
	playerHandler := handlers.NewPlayerHandler(repo, matcher)
	aiHandler := handlers.NewAIHelperHandler(aiService)
	draftHandler := handlers.NewDraftHandler(draftService)
	leagueHandler := handlers.NewLeagueHandler(deps.Importer, deps.Providers)

	aiLimiter := middleware.NewClientRateLimiter(cfg.AIRateLimit, time.Minute)

	// Player endpoints
	group.GET("/players", playerHandler.GetPlayers)
	group.GET("/players/search", playerHandler.SearchPlayers)

	// AI helper endpoints
	ai := group.Group("/ai")
	{
		ai.POST("/ask", middleware.RateLimit(aiLimiter), aiHandler.Ask)
		ai.GET("/history", aiHandler.History)
	}

	// Draft endpoints
	group.POST("/draft/analyze", draftHandler.AnalyzeDraft)

	// League endpoints
	group.GET("/leagues", leagueHandler.GetLeagues)
	group.GET("/leagues/:id/keepers", leagueHandler.GetKeepers)
	group.POST("/leagues/import", middleware.AuthRequired(cfg.JWTSecret), leagueHandler.ImportLeague)
}
