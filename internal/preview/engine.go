// Package preview is the interactive, flow-based renderer. It measures every
// block against the shared metrics oracle and greedily packs blocks into
// fixed-height pages, emitting HTML fragments a pager UI can show directly.
// It never splits a block; a block taller than one page gets its own page
// and is allowed to overflow visually.
package preview

import (
	"fmt"
	htmltemplate "html/template"

	"cvpress/internal/layout"
	"cvpress/internal/resume"
	"cvpress/internal/template"
)

// PageFragment is one rendered page, safe to inject into a host document.
type PageFragment = htmltemplate.HTML

// Result is the preview contract: ordered page fragments plus the count the
// pager needs. The page list is the only thing the export engine must
// approximately agree with.
type Result struct {
	Pages     []PageFragment `json:"pages"`
	PageCount int            `json:"page_count"`
}

// Engine renders previews. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	measurer layout.CoreMeasurer
}

// New constructs a preview engine.
func New() *Engine {
	return &Engine{}
}

// Render shapes the document through the named template and paginates the
// resulting blocks. Each call recomputes the full layout from scratch.
func (e *Engine) Render(doc *resume.Document, templateName string, sections resume.SectionConfig) (*Result, error) {
	blocks, err := template.Build(templateName, doc, sections)
	if err != nil {
		return nil, err
	}

	pages := e.paginate(blocks)

	result := &Result{
		Pages:     make([]PageFragment, 0, len(pages)),
		PageCount: len(pages),
	}
	for _, page := range pages {
		fragment, err := renderPage(page)
		if err != nil {
			return nil, fmt.Errorf("render page fragment: %w", err)
		}
		result.Pages = append(result.Pages, fragment)
	}
	return result, nil
}

// paginate packs blocks greedily: a block that would push the used height
// past the content box starts a new page. The first block of a page is
// always placed, however tall, which is where the accepted-overflow edge
// case lives.
func (e *Engine) paginate(blocks []template.Block) [][]template.Block {
	var (
		pages [][]template.Block
		page  []template.Block
		used  float64
	)
	for _, block := range blocks {
		h := e.BlockHeight(block)
		if len(page) > 0 && used+h > layout.ContentHeight {
			pages = append(pages, page)
			page = nil
			used = 0
		}
		page = append(page, block)
		used += h
	}
	if len(page) > 0 {
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		pages = append(pages, nil)
	}
	return pages
}

// BlockHeight measures one block, including its trailing spacing.
func (e *Engine) BlockHeight(block template.Block) float64 {
	h := 0.0
	switch block.Kind {
	case template.KindHeading:
		h = block.Style.FontSize * layout.LineHeightFactor
	case template.KindPills:
		rows := e.pillRows(block.Pills)
		if rows > 0 {
			h = float64(rows)*layout.PillHeight + float64(rows-1)*layout.PillRowGap
		}
	default:
		for _, line := range block.Lines {
			h += e.lineHeight(line, block.Style)
		}
	}
	return h + block.Style.SpacingAfter
}

func (e *Engine) lineHeight(line template.Line, style template.Style) float64 {
	if !line.Wrap {
		return line.Size * layout.LineHeightFactor
	}
	width := layout.ContentWidth
	if line.Right != "" && style.SplitRatio > 0 {
		width = layout.ContentWidth * style.SplitRatio
	}
	m := e.measurer.Measure(line.Left, line.FontStyle(), line.Size, width)
	return m.Height
}

// pillRows simulates the skill-pill wrap: a pill whose running x offset
// would exceed the row budget starts a new row.
func (e *Engine) pillRows(pills []string) int {
	if len(pills) == 0 {
		return 0
	}
	budget := layout.ContentWidth * layout.PillRowBudget
	rows := 1
	x := 0.0
	for _, pill := range pills {
		w := e.measurer.StringWidth(pill, layout.FontStyle{}, layout.PillFontSize) + 2*layout.PillPaddingX
		if x > 0 && x+w > budget {
			rows++
			x = 0
		}
		x += w + layout.PillGapX
	}
	return rows
}
