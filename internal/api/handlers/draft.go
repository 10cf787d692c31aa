package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/draft-diagnostics/internal/draft"
	"github.com/jstittsworth/draft-diagnostics/internal/services"
	"github.com/jstittsworth/draft-diagnostics/pkg/utils"
)

type DraftHandler struct {
	service *services.DraftAnalysisService
}

func NewDraftHandler(service *services.DraftAnalysisService) *DraftHandler {
	return &DraftHandler{service: service}
}

type AnalyzeDraftRequest struct {
	Label string       `json:"label"`
	Picks []draft.Pick `json:"picks"`
}

// AnalyzeDraft scores a drafted team. An empty pick list is valid and grades F.
func (h *DraftHandler) AnalyzeDraft(c *gin.Context) {
	var req AnalyzeDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request", err.Error())
		return
	}

	analysis, record, err := h.service.Analyze(c.Request.Context(), req.Label, req.Picks)
	if err != nil {
		_ = c.Error(err)
		utils.SendInternalError(c, "Failed to store draft analysis")
		return
	}

	utils.SendCreated(c, gin.H{
		"id":       record.ID,
		"analysis": analysis,
	})
}
