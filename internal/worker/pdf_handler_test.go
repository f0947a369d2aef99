package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cvpress/internal/database"
	"cvpress/internal/errcode"
	"cvpress/internal/export"
	"cvpress/internal/resume"
	"cvpress/internal/tasks"
)

type fakeStore struct {
	uploaded map[string][]byte
}

func (s *fakeStore) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	b, _ := io.ReadAll(reader)
	if s.uploaded == nil {
		s.uploaded = map[string][]byte{}
	}
	s.uploaded[objectName] = b
	return &minio.UploadInfo{}, nil
}

type fakePublisher struct {
	channels []string
	payloads [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, payload)
	return nil
}

func newWorkerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.Resume{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedQueuedResume(t *testing.T, db *gorm.DB) database.Resume {
	t.Helper()
	doc := resume.Document{
		PersonalInfo: resume.PersonalInfo{FullName: "Grace Hopper"},
		Summary:      "Compiler pioneer.",
		Skills:       []string{"COBOL", "Go"},
	}
	content, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	model := database.Resume{
		Title:    "queued",
		Content:  datatypes.JSON(content),
		Template: "classic",
		Status:   database.StatusQueued,
		UserID:   7,
	}
	if err := db.Create(&model).Error; err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return model
}

func newHandler(db *gorm.DB, store ObjectStore, publisher Publisher) *PDFTaskHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPDFTaskHandler(db, store, publisher, export.New(""), logger)
}

func TestProcessTask_ExportsAndNotifies(t *testing.T) {
	db := newWorkerDB(t)
	store := &fakeStore{}
	publisher := &fakePublisher{}
	h := newHandler(db, store, publisher)

	model := seedQueuedResume(t, db)

	task, err := tasks.NewPDFExportTask(model.ID, "corr-123")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := h.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("process task: %v", err)
	}

	if len(store.uploaded) != 1 {
		t.Fatalf("expected one uploaded object, got %d", len(store.uploaded))
	}
	for name, data := range store.uploaded {
		if !strings.HasPrefix(name, "generated-resumes/7/") || !strings.HasSuffix(name, ".pdf") {
			t.Fatalf("unexpected object name %q", name)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Fatalf("uploaded object is not a pdf")
		}
	}

	var reloaded database.Resume
	if err := db.First(&reloaded, model.ID).Error; err != nil {
		t.Fatalf("reload resume: %v", err)
	}
	if reloaded.Status != database.StatusCompleted || reloaded.PdfURL == "" {
		t.Fatalf("unexpected resume state status=%q pdf_url=%q", reloaded.Status, reloaded.PdfURL)
	}

	if len(publisher.channels) != 1 || publisher.channels[0] != "user_notify:7" {
		t.Fatalf("unexpected notify channels %v", publisher.channels)
	}
	var notify ExportNotifyMessage
	if err := json.Unmarshal(publisher.payloads[0], &notify); err != nil {
		t.Fatalf("decode notify: %v", err)
	}
	if notify.Status != "completed" || notify.CorrelationID != "corr-123" || notify.ErrorCode != errcode.OK {
		t.Fatalf("unexpected notify message %+v", notify)
	}
	if notify.PageCount < 1 {
		t.Fatalf("expected at least one page, got %d", notify.PageCount)
	}
}

func TestProcessTask_MissingResumeSkips(t *testing.T) {
	db := newWorkerDB(t)
	store := &fakeStore{}
	publisher := &fakePublisher{}
	h := newHandler(db, store, publisher)

	task, err := tasks.NewPDFExportTask(999, "corr-404")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := h.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("expected missing resume to be skipped, got %v", err)
	}
	if len(store.uploaded) != 0 || len(publisher.channels) != 0 {
		t.Fatalf("expected no side effects for missing resume")
	}
}

func TestExportErrorCode(t *testing.T) {
	if got := exportErrorCode(export.ErrFontUnavailable); got != errcode.FontMissing {
		t.Fatalf("font error mapped to %d", got)
	}
	if got := exportErrorCode(io.ErrUnexpectedEOF); got != errcode.SystemError {
		t.Fatalf("generic error mapped to %d", got)
	}
}
