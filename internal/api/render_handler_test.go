package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cvpress/internal/export"
	"cvpress/internal/preview"
	"cvpress/internal/resume"
)

func testDocument() *resume.Document {
	return &resume.Document{
		PersonalInfo: resume.PersonalInfo{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
		},
		Summary: "Engineer with a focus on document pipelines.",
		Skills:  []string{"Go", "SQL"},
	}
}

func newRenderContext(t *testing.T, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/render/preview", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestPreview_ReturnsPages(t *testing.T) {
	h := NewRenderHandler(preview.New(), export.New(""))

	c, w := newRenderContext(t, gin.H{
		"resume":   testDocument(),
		"template": "classic",
	})
	h.Preview(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var result preview.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.PageCount != 1 || len(result.Pages) != 1 {
		t.Fatalf("expected a single page, got count=%d pages=%d", result.PageCount, len(result.Pages))
	}
	if !strings.Contains(string(result.Pages[0]), "Ada Lovelace") {
		t.Fatalf("expected rendered name in page html")
	}
}

func TestPreview_MissingResume(t *testing.T) {
	h := NewRenderHandler(preview.New(), export.New(""))

	c, w := newRenderContext(t, gin.H{"template": "classic"})
	h.Preview(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestPreview_UnknownTemplate(t *testing.T) {
	h := NewRenderHandler(preview.New(), export.New(""))

	c, w := newRenderContext(t, gin.H{
		"resume":   testDocument(),
		"template": "brutalist",
	})
	h.Preview(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestExport_ReturnsPDFAttachment(t *testing.T) {
	h := NewRenderHandler(preview.New(), export.New(""))

	c, w := newRenderContext(t, gin.H{
		"resume":   testDocument(),
		"template": "professional",
	})
	h.Export(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != export.ContentType {
		t.Fatalf("unexpected content type %q", got)
	}
	disposition := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, "attachment;") || !strings.Contains(disposition, ".pdf") {
		t.Fatalf("unexpected disposition %q", disposition)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf payload, got %q", w.Body.Bytes()[:minInt(8, w.Body.Len())])
	}
}

func TestExport_FontDirMissingWeights(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"regular.ttf", "bold.ttf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o600); err != nil {
			t.Fatalf("write font stub: %v", err)
		}
	}
	h := NewRenderHandler(preview.New(), export.New(dir))

	c, w := newRenderContext(t, gin.H{"resume": testDocument()})
	h.Export(c)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d body=%s", w.Code, w.Body.String())
	}
	if w.Body.Len() > 0 && bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected no pdf bytes on font failure")
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
