package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/draft-diagnostics/internal/fantasy"
	"github.com/jstittsworth/draft-diagnostics/internal/services"
	"github.com/jstittsworth/draft-diagnostics/pkg/utils"
)

// ProviderFactory builds a league connector for an import request
type ProviderFactory interface {
	New(platform fantasy.Platform, leagueID string, season int) (fantasy.LeagueProvider, error)
}

type LeagueHandler struct {
	importer *services.LeagueImportService
	factory  ProviderFactory
}

func NewLeagueHandler(importer *services.LeagueImportService, factory ProviderFactory) *LeagueHandler {
	return &LeagueHandler{
		importer: importer,
		factory:  factory,
	}
}

type ImportLeagueRequest struct {
	Platform string `json:"platform" binding:"required,oneof=espn sleeper"`
	LeagueID string `json:"league_id"`
	Season   int    `json:"season"`
}

// GetLeagues lists imported leagues
func (h *LeagueHandler) GetLeagues(c *gin.Context) {
	leagues, err := h.importer.Leagues(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		utils.SendInternalError(c, "Failed to fetch leagues")
		return
	}
	utils.SendSuccess(c, leagues)
}

// GetKeepers returns the latest keeper recommendations for a league
func (h *LeagueHandler) GetKeepers(c *gin.Context) {
	leagueID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid league ID", err.Error())
		return
	}

	keepers, err := h.importer.Keepers(c.Request.Context(), uint(leagueID))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.SendNotFound(c, "League not found")
			return
		}
		_ = c.Error(err)
		utils.SendInternalError(c, "Failed to fetch keeper recommendations")
		return
	}
	utils.SendSuccess(c, keepers)
}

// ImportLeague connects to the platform and stores the league's rosters and
// keeper recommendations
func (h *LeagueHandler) ImportLeague(c *gin.Context) {
	var req ImportLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request", err.Error())
		return
	}

	provider, err := h.factory.New(fantasy.Platform(req.Platform), req.LeagueID, req.Season)
	if err != nil {
		utils.SendValidationError(c, "Invalid league", err.Error())
		return
	}

	result, err := h.importer.Import(c.Request.Context(), provider)
	if err != nil {
		_ = c.Error(err)
		switch {
		case errors.Is(err, fantasy.ErrLeagueNotFound):
			utils.SendNotFound(c, "League not found on "+req.Platform)
		case errors.Is(err, fantasy.ErrPrivateLeague):
			utils.SendForbidden(c, "League is private, check espn_s2 and SWID credentials")
		case errors.Is(err, utils.ErrLeagueConnection):
			utils.SendBadGateway(c, "Failed to connect to league", err.Error())
		default:
			utils.SendInternalError(c, "Failed to import league")
		}
		return
	}

	utils.SendCreated(c, result)
}
