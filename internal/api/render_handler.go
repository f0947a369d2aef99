package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cvpress/internal/api/middleware"
	"cvpress/internal/export"
	"cvpress/internal/metrics"
	"cvpress/internal/preview"
	"cvpress/internal/resume"
	"cvpress/internal/template"
)

// RenderHandler serves the synchronous render endpoints: the preview used by
// the editor on every change, and the direct PDF download.
type RenderHandler struct {
	previewEngine *preview.Engine
	exportEngine  *export.Engine
}

// NewRenderHandler wires both engines into one handler.
func NewRenderHandler(previewEngine *preview.Engine, exportEngine *export.Engine) *RenderHandler {
	return &RenderHandler{
		previewEngine: previewEngine,
		exportEngine:  exportEngine,
	}
}

type renderRequest struct {
	Resume   *resume.Document     `json:"resume"`
	Template string               `json:"template"`
	Sections resume.SectionConfig `json:"sections"`
}

func (r *renderRequest) defaults() {
	if r.Template == "" {
		r.Template = "classic"
	}
}

// Preview lays the document out and returns the page fragments plus count.
// POST /v1/render/preview
func (h *RenderHandler) Preview(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Resume == nil {
		BadRequest(c, "missing resume data")
		return
	}
	req.defaults()

	start := time.Now()
	result, err := h.previewEngine.Render(req.Resume, req.Template, req.Sections)
	metrics.ObserveRender("preview", req.Template, start, pageCount(result), err)
	if err != nil {
		if errors.Is(err, template.ErrUnknownTemplate) {
			BadRequest(c, err.Error())
			return
		}
		middleware.LoggerFromContext(c).Error("preview render failed", slog.Any("error", err))
		Internal(c, "failed to render preview")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Export runs the full PDF pass and streams the document as an attachment.
// POST /v1/render/export
func (h *RenderHandler) Export(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Resume == nil {
		BadRequest(c, "missing resume data")
		return
	}
	req.defaults()

	var buf bytes.Buffer
	start := time.Now()
	pages, err := h.exportEngine.Render(&buf, req.Resume, req.Template, req.Sections)
	metrics.ObserveRender("export", req.Template, start, pages, err)
	if err != nil {
		log := middleware.LoggerFromContext(c)
		switch {
		case errors.Is(err, template.ErrUnknownTemplate):
			BadRequest(c, err.Error())
		case errors.Is(err, export.ErrFontUnavailable):
			log.Error("export fonts unavailable", slog.Any("error", err))
			Internal(c, err.Error())
		default:
			log.Error("export render failed", slog.Any("error", err))
			Internal(c, "failed to generate pdf")
		}
		return
	}

	c.Header("Content-Disposition", export.Disposition(req.Resume))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func pageCount(result *preview.Result) int {
	if result == nil {
		return 0
	}
	return result.PageCount
}
