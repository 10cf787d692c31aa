package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/matching"
	"github.com/jstittsworth/draft-diagnostics/pkg/utils"
)

const (
	defaultPlayerLimit = 50
	maxPlayerLimit     = 300
)

type PlayerHandler struct {
	repo    *adp.Repository
	matcher matching.Matcher
}

func NewPlayerHandler(repo *adp.Repository, matcher matching.Matcher) *PlayerHandler {
	return &PlayerHandler{
		repo:    repo,
		matcher: matcher,
	}
}

// GetPlayers returns ADP rows in rank order
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPlayerLimit)))
	if err != nil || limit < 1 {
		utils.SendValidationError(c, "Invalid limit", "limit must be a positive integer")
		return
	}
	if limit > maxPlayerLimit {
		limit = maxPlayerLimit
	}

	players, total, err := h.repo.List(c.Request.Context(), strings.ToUpper(strings.TrimSpace(c.Query("position"))), limit)
	if err != nil {
		_ = c.Error(err)
		utils.SendInternalError(c, "Failed to fetch players")
		return
	}

	utils.SendSuccessWithMeta(c, players, &utils.Meta{Limit: limit, Total: total})
}

// SearchPlayers resolves a free-text name to the closest ADP entry
func (h *PlayerHandler) SearchPlayers(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		utils.SendValidationError(c, "Missing name", "name query parameter is required")
		return
	}

	table, err := adp.Load(c.Request.Context(), h.repo)
	if err != nil {
		_ = c.Error(err)
		utils.SendInternalError(c, "Failed to load ADP data")
		return
	}

	player, match := table.Find(name, h.matcher)
	if !match.Found {
		utils.SendNotFound(c, "No player matches "+strconv.Quote(name))
		return
	}

	utils.SendSuccess(c, gin.H{
		"player": player,
		"match":  match,
	})
}
