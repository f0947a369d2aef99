package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvpress/internal/api/middleware"
	"cvpress/internal/suggest"
)

// SuggestHandler proxies text-improvement requests to the configured
// completion backend. A nil suggester means the feature is off.
type SuggestHandler struct {
	suggester suggest.Suggester
}

func NewSuggestHandler(suggester suggest.Suggester) *SuggestHandler {
	return &SuggestHandler{suggester: suggester}
}

type suggestRequest struct {
	Section string `json:"section" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

// Suggest rewrites a section's text.
// POST /v1/suggest
func (h *SuggestHandler) Suggest(c *gin.Context) {
	if h.suggester == nil {
		Error(c, http.StatusServiceUnavailable, "suggestions are not configured")
		return
	}

	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	improved, err := h.suggester.Suggest(c.Request.Context(), req.Section, req.Text)
	if err != nil {
		middleware.LoggerFromContext(c).Error("suggestion request failed", slog.Any("error", err))
		Internal(c, "failed to generate suggestion")
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": req.Section, "suggestion": improved})
}
