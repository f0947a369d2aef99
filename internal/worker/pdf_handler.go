package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"

	"cvpress/internal/database"
	"cvpress/internal/errcode"
	"cvpress/internal/export"
	"cvpress/internal/resume"
	"cvpress/internal/tasks"
	"cvpress/internal/template"
)

// ObjectStore is the slice of the storage client the worker uses.
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
}

// Publisher publishes notification payloads to a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// PDFTaskHandler consumes pdf:export tasks: it renders the stored resume,
// uploads the PDF and notifies the owner over Redis Pub/Sub.
type PDFTaskHandler struct {
	db        *gorm.DB
	storage   ObjectStore
	publisher Publisher
	engine    *export.Engine
	logger    *slog.Logger
}

// NewPDFTaskHandler creates the task handler.
func NewPDFTaskHandler(db *gorm.DB, storage ObjectStore, publisher Publisher, engine *export.Engine, logger *slog.Logger) *PDFTaskHandler {
	return &PDFTaskHandler{
		db:        db,
		storage:   storage,
		publisher: publisher,
		engine:    engine,
		logger:    logger,
	}
}

// ProcessTask implements asynq.Handler.
func (h *PDFTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
	)
	log.Info("starting pdf export task")

	var model database.Resume
	if err := h.db.WithContext(ctx).First(&model, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(model.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		if err := h.db.WithContext(ctx).Model(&model).Update("status", database.StatusFailed).Error; err != nil {
			log.Error("mark resume failed", slog.Any("error", err))
		}
		notify := ExportNotifyMessage{
			Status:        "error",
			ResumeID:      model.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     exportErrorCode(retErr),
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishNotify(ctx, model.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	doc, sections, err := decodeResumeModel(&model)
	if err != nil {
		log.Error("decode stored resume failed", slog.Any("error", err))
		return err
	}

	var buf bytes.Buffer
	pages, err := h.engine.Render(&buf, doc, model.Template, sections)
	if err != nil {
		log.Error("render pdf failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("generated-resumes/%d/%s.pdf", model.UserID, uuid.NewString())
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(buf.Bytes()), int64(buf.Len()), export.ContentType); err != nil {
		log.Error("upload pdf failed", slog.Any("error", err))
		return err
	}

	update := map[string]any{
		"pdf_url": objectName,
		"status":  database.StatusCompleted,
	}
	if err := h.db.WithContext(ctx).Model(&model).Updates(update).Error; err != nil {
		log.Error("update resume failed", slog.Any("error", err))
		return err
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		ResumeID:      model.ID,
		CorrelationID: payload.CorrelationID,
		PageCount:     pages,
		ErrorCode:     errcode.OK,
	}
	if err := h.publishNotify(ctx, model.UserID, notify); err != nil {
		log.Error("publish export notification failed", slog.Any("error", err))
		return err
	}

	log.Info("pdf export task completed", slog.Int("pages", pages))
	return nil
}

func (h *PDFTaskHandler) publishNotify(ctx context.Context, userID uint, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.publisher.Publish(ctx, channel, data); err != nil {
		return fmt.Errorf("publish notification to %q: %w", channel, err)
	}
	return nil
}

func decodeResumeModel(model *database.Resume) (*resume.Document, resume.SectionConfig, error) {
	var doc resume.Document
	if len(model.Content) > 0 {
		if err := json.Unmarshal(model.Content, &doc); err != nil {
			return nil, nil, fmt.Errorf("decode resume content: %w", err)
		}
	}
	var sections resume.SectionConfig
	if len(model.Sections) > 0 {
		if err := json.Unmarshal(model.Sections, &sections); err != nil {
			return nil, nil, fmt.Errorf("decode resume sections: %w", err)
		}
	}
	return &doc, sections, nil
}

func exportErrorCode(err error) int {
	switch {
	case errors.Is(err, template.ErrUnknownTemplate):
		return errcode.UnknownTemplate
	case errors.Is(err, export.ErrFontUnavailable):
		return errcode.FontMissing
	default:
		return errcode.SystemError
	}
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
