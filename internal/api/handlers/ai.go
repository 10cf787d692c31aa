package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/draft-diagnostics/internal/services"
	"github.com/jstittsworth/draft-diagnostics/pkg/utils"
)

type AIHelperHandler struct {
	service *services.AIHelperService
}

func NewAIHelperHandler(service *services.AIHelperService) *AIHelperHandler {
	return &AIHelperHandler{service: service}
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask answers an ADP question. Unrecognized questions are still a 200 with
// success=false in the answer so clients can show the help text.
func (h *AIHelperHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request", err.Error())
		return
	}

	resp, err := h.service.Ask(c.Request.Context(), c.GetString("request_id"), req.Question)
	if err != nil {
		_ = c.Error(err)
		utils.SendInternalError(c, "Failed to answer question")
		return
	}

	utils.SendSuccess(c, resp)
}

// History lists recently asked questions
func (h *AIHelperHandler) History(c *gin.Context) {
	queries, err := h.service.History(c.Request.Context(), 20)
	if err != nil {
		_ = c.Error(err)
		utils.SendInternalError(c, "Failed to fetch question history")
		return
	}
	utils.SendSuccess(c, queries)
}
