package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cvpress/internal/api/middleware"
	"cvpress/internal/database"
	"cvpress/internal/export"
	"cvpress/internal/metrics"
	"cvpress/internal/resume"
	"cvpress/internal/tasks"
	"cvpress/internal/template"
)

// ResumeHandler owns the stored-resume endpoints: CRUD plus the export
// paths that operate on a saved draft instead of a request body.
type ResumeHandler struct {
	db           *gorm.DB
	asynqClient  *asynq.Client
	storage      ObjectStorage
	exportEngine *export.Engine
	maxResumes   int
}

// ObjectStorage is the slice of the object store the handler needs.
type ObjectStorage interface {
	GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// NewResumeHandler constructs the handler.
func NewResumeHandler(db *gorm.DB, asynqClient *asynq.Client, storage ObjectStorage, exportEngine *export.Engine, maxResumes int) *ResumeHandler {
	return &ResumeHandler{
		db:           db,
		asynqClient:  asynqClient,
		storage:      storage,
		exportEngine: exportEngine,
		maxResumes:   maxResumes,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

type saveResumeRequest struct {
	Title    string               `json:"title" binding:"required"`
	Resume   *resume.Document     `json:"resume" binding:"required"`
	Template string               `json:"template"`
	Sections resume.SectionConfig `json:"sections"`
}

type resumeListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type resumeResponse struct {
	ID        uint                 `json:"id"`
	Title     string               `json:"title"`
	Resume    json.RawMessage      `json:"resume"`
	Template  string               `json:"template"`
	Sections  resume.SectionConfig `json:"sections"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func newResumeResponse(model database.Resume) resumeResponse {
	var sections resume.SectionConfig
	if len(model.Sections) > 0 {
		// Stored sections are trusted; a failed decode just falls back to
		// the default order on next render.
		_ = json.Unmarshal(model.Sections, &sections)
	}
	return resumeResponse{
		ID:        model.ID,
		Title:     model.Title,
		Resume:    json.RawMessage(model.Content),
		Template:  model.Template,
		Sections:  sections.Sanitize(),
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (r *saveResumeRequest) toModel(userID uint) (database.Resume, error) {
	doc := r.Resume.Clone()
	doc.Normalize()

	content, err := json.Marshal(doc)
	if err != nil {
		return database.Resume{}, err
	}
	sections, err := json.Marshal(r.Sections.Sanitize())
	if err != nil {
		return database.Resume{}, err
	}
	templateName := r.Template
	if templateName == "" {
		templateName = "classic"
	}
	return database.Resume{
		Title:    r.Title,
		Content:  datatypes.JSON(content),
		Sections: datatypes.JSON(sections),
		Template: templateName,
		Status:   database.StatusDraft,
		UserID:   userID,
	}, nil
}

// CreateResume saves a new draft, refusing past the per-user limit.
// POST /v1/resumes
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if _, ok := template.Lookup(req.Template); !ok && req.Template != "" {
		BadRequest(c, "unsupported template")
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()

	var count int64
	if err := h.db.WithContext(ctx).
		Model(&database.Resume{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		Internal(c, "failed to count resumes")
		return
	}
	if h.maxResumes > 0 && count >= int64(h.maxResumes) {
		Forbidden(c, "resume limit reached")
		return
	}

	model, err := req.toModel(userID)
	if err != nil {
		Internal(c, "failed to encode resume")
		return
	}
	if err := h.db.WithContext(ctx).Create(&model).Error; err != nil {
		Internal(c, "failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, newResumeResponse(model))
}

// ListResumes lists every draft the user owns.
// GET /v1/resumes
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var models []database.Resume
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&models).Error; err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(models))
	for _, m := range models {
		items = append(items, resumeListItem{
			ID:        m.ID,
			Title:     m.Title,
			Template:  m.Template,
			Status:    m.Status,
			CreatedAt: m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, items)
}

// GetResume returns one draft.
// GET /v1/resumes/:id
func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// UpdateResume overwrites one draft.
// PUT /v1/resumes/:id
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if _, ok := template.Lookup(req.Template); !ok && req.Template != "" {
		BadRequest(c, "unsupported template")
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	model, err := h.getResumeForUser(ctx, c.Param("id"), userID)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	updated, err := req.toModel(userID)
	if err != nil {
		Internal(c, "failed to encode resume")
		return
	}
	updates := map[string]any{
		"title":    updated.Title,
		"content":  updated.Content,
		"sections": updated.Sections,
		"template": updated.Template,
	}
	if err := h.db.WithContext(ctx).Model(model).Updates(updates).Error; err != nil {
		Internal(c, "failed to update resume")
		return
	}
	if err := h.db.WithContext(ctx).First(model, model.ID).Error; err != nil {
		Internal(c, "failed to reload resume")
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// DeleteResume removes one draft and its generated PDF, if any. The bucket
// cleanup is best-effort: a storage failure leaves an orphan but never
// blocks the row deletion.
// DELETE /v1/resumes/:id
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	model, err := h.getResumeForUser(ctx, c.Param("id"), userID)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	if err := h.db.WithContext(ctx).Delete(model).Error; err != nil {
		Internal(c, "failed to delete resume")
		return
	}
	if model.PdfURL != "" {
		if err := h.storage.DeleteObject(ctx, model.PdfURL); err != nil {
			middleware.LoggerFromContext(c).Warn("delete generated pdf failed",
				slog.String("object_key", model.PdfURL),
				slog.Any("error", err),
			)
		}
	}
	c.Status(http.StatusNoContent)
}

// DownloadResume streams the generated PDF of a completed export straight
// from the bucket.
// GET /v1/resumes/:id/download
func (h *ResumeHandler) DownloadResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	model, err := h.getResumeForUser(ctx, c.Param("id"), userID)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	if model.PdfURL == "" || model.Status != database.StatusCompleted {
		NotFound(c, "no completed export for this resume")
		return
	}

	object, err := h.storage.GetObject(ctx, model.PdfURL)
	if err != nil {
		middleware.LoggerFromContext(c).Error("fetch generated pdf failed",
			slog.String("object_key", model.PdfURL),
			slog.Any("error", err),
		)
		Internal(c, "failed to fetch pdf")
		return
	}
	defer object.Close()

	doc, _, err := decodeStoredResume(model)
	if err != nil {
		Internal(c, "stored resume is not decodable")
		return
	}

	extraHeaders := map[string]string{
		"Content-Disposition": export.Disposition(doc),
	}
	c.DataFromReader(http.StatusOK, -1, export.ContentType, object, extraHeaders)
}

// ExportResume renders a stored draft synchronously and streams the PDF.
// GET /v1/resumes/:id/export
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	doc, sections, err := decodeStoredResume(model)
	if err != nil {
		Internal(c, "stored resume is not decodable")
		return
	}

	var buf bytes.Buffer
	start := time.Now()
	pages, err := h.exportEngine.Render(&buf, doc, model.Template, sections)
	metrics.ObserveRender("export", model.Template, start, pages, err)
	if err != nil {
		log := middleware.LoggerFromContext(c)
		switch {
		case errors.Is(err, template.ErrUnknownTemplate):
			BadRequest(c, err.Error())
		case errors.Is(err, export.ErrFontUnavailable):
			log.Error("export fonts unavailable", slog.Any("error", err))
			Internal(c, err.Error())
		default:
			log.Error("stored resume export failed", slog.Any("error", err))
			Internal(c, "failed to generate pdf")
		}
		return
	}

	c.Header("Content-Disposition", export.Disposition(doc))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// ExportResumeAsync queues a background export for a stored draft.
// POST /v1/resumes/:id/export-async
func (h *ResumeHandler) ExportResumeAsync(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	model, err := h.getResumeForUser(ctx, c.Param("id"), userID)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFExportTask(model.ID, correlationID)
	if err != nil {
		Internal(c, "failed to build export task")
		return
	}
	info, err := h.asynqClient.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	if err != nil {
		Internal(c, "failed to queue export task")
		return
	}

	if err := h.db.WithContext(ctx).Model(model).Update("status", database.StatusQueued).Error; err != nil {
		Internal(c, "failed to mark resume queued")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id":        info.ID,
		"correlation_id": correlationID,
	})
}

// GetDownloadLink hands out a presigned URL for a completed export.
// GET /v1/resumes/:id/download-link
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	model, err := h.getResumeForUser(ctx, c.Param("id"), userID)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	if model.PdfURL == "" || model.Status != database.StatusCompleted {
		NotFound(c, "no completed export for this resume")
		return
	}

	const linkTTL = 15 * time.Minute
	url, err := h.storage.GeneratePresignedURL(ctx, model.PdfURL, linkTTL)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expires_in": int(linkTTL.Seconds())})
}

func (h *ResumeHandler) getResumeForUser(ctx context.Context, rawID string, userID uint) (*database.Resume, error) {
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return nil, errInvalidResumeID
	}

	var model database.Resume
	if err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model, uint(id)).Error; err != nil {
		return nil, err
	}
	return &model, nil
}

func (h *ResumeHandler) respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidResumeID):
		BadRequest(c, "invalid resume id")
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "resume not found")
	default:
		Internal(c, "failed to query resume")
	}
}

func decodeStoredResume(model *database.Resume) (*resume.Document, resume.SectionConfig, error) {
	var doc resume.Document
	if len(model.Content) > 0 {
		if err := json.Unmarshal(model.Content, &doc); err != nil {
			return nil, nil, err
		}
	}
	var sections resume.SectionConfig
	if len(model.Sections) > 0 {
		if err := json.Unmarshal(model.Sections, &sections); err != nil {
			return nil, nil, err
		}
	}
	return &doc, sections, nil
}
