// Package export is the binary renderer: an explicit-cursor drawing pass
// over a PDF surface. It shares the template stage and the numeric layout
// constants with the preview engine, so the two stay visually consistent
// even though their measurement primitives differ.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"cvpress/internal/layout"
	"cvpress/internal/resume"
	"cvpress/internal/template"
)

// ContentType is the media type of a finished export.
const ContentType = "application/pdf"

// Engine renders documents to PDF. Each Render call builds and discards a
// fresh drawing context, so a single engine serves concurrent callers.
type Engine struct {
	fontDir string
}

// New constructs an export engine. An empty fontDir selects the built-in
// Helvetica core faces; otherwise the directory must hold regular.ttf,
// bold.ttf and italic.ttf.
func New(fontDir string) *Engine {
	return &Engine{fontDir: fontDir}
}

// Render lays the document out through the named template and writes the
// finished PDF to w. Output is all-or-nothing: on any error nothing is
// written. The page count of the produced document is returned.
func (e *Engine) Render(w io.Writer, doc *resume.Document, templateName string, sections resume.SectionConfig) (int, error) {
	blocks, err := template.Build(templateName, doc, sections)
	if err != nil {
		return 0, err
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	defer pdf.Close()

	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(false, layout.Margin)

	family, err := resolveFonts(pdf, e.fontDir)
	if err != nil {
		return 0, err
	}

	pdf.SetTitle(doc.PersonalInfo.FullName, true)
	pdf.AddPage()

	c := &cursor{pdf: pdf, family: family}
	for _, block := range blocks {
		c.drawBlock(block)
	}
	if pdf.Err() {
		return 0, fmt.Errorf("draw resume: %w", pdf.Error())
	}

	pages := pdf.PageCount()

	// Buffer first so a failing Output never leaks partial bytes to w.
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return 0, fmt.Errorf("finalize pdf: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return 0, fmt.Errorf("write pdf: %w", err)
	}
	return pages, nil
}

// Filename derives the attachment name from the person's name.
func Filename(doc *resume.Document) string {
	name := resume.PlaceholderName
	if doc != nil {
		if n := strings.TrimSpace(doc.PersonalInfo.FullName); n != "" {
			name = n
		}
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
	return name + ".pdf"
}

// Disposition builds the Content-Disposition header for a finished export.
func Disposition(doc *resume.Document) string {
	return fmt.Sprintf("attachment; filename=%q", Filename(doc))
}
