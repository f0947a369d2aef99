package export

import (
	"strings"

	"github.com/go-pdf/fpdf"

	"cvpress/internal/layout"
	"cvpress/internal/template"
)

// cursor wraps the drawing surface with a page-break-aware write position.
// Every section goes through ensureSpace, so the overflow check lives in
// exactly one place.
type cursor struct {
	pdf    *fpdf.Fpdf
	family string
}

const pageBottom = layout.PageHeight - layout.Margin - layout.BottomBuffer

// ensureSpace starts a new page when the next block of the given height
// would cross the printable bottom. A block taller than a whole page is
// placed at the top of a fresh page and allowed to overflow, the same
// approximation the preview engine makes.
func (c *cursor) ensureSpace(height float64) {
	if c.pdf.GetY() <= layout.Margin {
		return
	}
	if c.pdf.GetY()+height > pageBottom {
		c.pdf.AddPage()
	}
}

func (c *cursor) setFont(size float64, bold, italic bool) {
	style := ""
	if bold {
		style += "B"
	}
	if italic {
		style += "I"
	}
	c.pdf.SetFont(c.family, style, size)
}

// blockHeight estimates the drawn height of a block, trailing spacing
// included, using the surface's own string metrics so the estimate matches
// what draw will actually produce.
func (c *cursor) blockHeight(block template.Block) float64 {
	h := 0.0
	switch block.Kind {
	case template.KindHeading:
		h = block.Style.FontSize * layout.LineHeightFactor
	case template.KindPills:
		rows := c.pillRows(block.Pills)
		if rows > 0 {
			h = float64(rows)*layout.PillHeight + float64(rows-1)*layout.PillRowGap
		}
	default:
		for _, line := range block.Lines {
			h += c.lineHeight(line, block.Style)
		}
	}
	return h + block.Style.SpacingAfter
}

func (c *cursor) lineHeight(line template.Line, style template.Style) float64 {
	advance := line.Size * layout.LineHeightFactor
	if !line.Wrap {
		return advance
	}
	width := layout.ContentWidth
	if line.Right != "" && style.SplitRatio > 0 {
		width = layout.ContentWidth * style.SplitRatio
	}
	c.setFont(line.Size, line.Bold, line.Italic)
	lines := c.pdf.SplitText(line.Left, width)
	if len(lines) == 0 {
		return advance
	}
	return float64(len(lines)) * advance
}

func (c *cursor) drawBlock(block template.Block) {
	c.ensureSpace(c.blockHeight(block))

	switch block.Kind {
	case template.KindHeading:
		c.drawHeading(block)
	case template.KindPills:
		c.drawPills(block)
	default:
		for _, line := range block.Lines {
			c.drawLine(line, block.Style)
		}
	}
	c.pdf.Ln(block.Style.SpacingAfter)
}

func (c *cursor) drawHeading(block template.Block) {
	text := block.Heading
	if block.Style.Uppercase {
		text = strings.ToUpper(text)
	}
	c.setFont(block.Style.FontSize, block.Style.Bold, block.Style.Italic)
	advance := block.Style.FontSize * layout.LineHeightFactor
	c.pdf.CellFormat(layout.ContentWidth, advance, text, "", 1, "L", false, 0, "")

	// Thin rule under the heading, inside the heading advance.
	y := c.pdf.GetY() - 2
	c.pdf.SetDrawColor(170, 170, 170)
	c.pdf.SetLineWidth(0.6)
	c.pdf.Line(layout.Margin, y, layout.Margin+layout.ContentWidth, y)
}

func (c *cursor) drawLine(line template.Line, style template.Style) {
	c.setFont(line.Size, line.Bold, line.Italic)
	advance := line.Size * layout.LineHeightFactor

	align := "L"
	if style.Centered {
		align = "C"
	}

	if line.Wrap {
		c.pdf.MultiCell(layout.ContentWidth, advance, line.Left, "", align, false)
		return
	}

	if line.Right != "" && style.SplitRatio > 0 {
		// Left cell left-aligned, the date zone right-aligned inside the
		// rightmost 1-ratio of the content width.
		left := layout.ContentWidth * style.SplitRatio
		c.pdf.CellFormat(left, advance, line.Left, "", 0, "L", false, 0, "")
		c.setFont(line.Size, false, false)
		c.pdf.CellFormat(layout.ContentWidth-left, advance, line.Right, "", 1, "R", false, 0, "")
		return
	}

	c.pdf.CellFormat(layout.ContentWidth, advance, line.Left, "", 1, align, false, 0, "")
}

func (c *cursor) pillWidth(pill string) float64 {
	c.setFont(layout.PillFontSize, false, false)
	return c.pdf.GetStringWidth(pill) + 2*layout.PillPaddingX
}

func (c *cursor) pillRows(pills []string) int {
	if len(pills) == 0 {
		return 0
	}
	budget := layout.ContentWidth * layout.PillRowBudget
	rows := 1
	x := 0.0
	for _, pill := range pills {
		w := c.pillWidth(pill)
		if x > 0 && x+w > budget {
			rows++
			x = 0
		}
		x += w + layout.PillGapX
	}
	return rows
}

// drawPills renders the skill tags as filled rounded rectangles, wrapping to
// a new row when the running x offset would exceed the row budget. Each wrap
// advances y by exactly pill height + row gap.
func (c *cursor) drawPills(block template.Block) {
	budget := layout.ContentWidth * layout.PillRowBudget
	x := layout.Margin
	y := c.pdf.GetY()

	c.pdf.SetFillColor(238, 241, 244)
	c.setFont(layout.PillFontSize, false, false)

	for _, pill := range block.Pills {
		w := c.pillWidth(pill)
		if x > layout.Margin && x-layout.Margin+w > budget {
			x = layout.Margin
			y += layout.PillHeight + layout.PillRowGap
		}
		c.pdf.RoundedRect(x, y, w, layout.PillHeight, 4, "1234", "F")
		c.pdf.SetXY(x, y)
		c.pdf.CellFormat(w, layout.PillHeight, pill, "", 0, "C", false, 0, "")
		x += w + layout.PillGapX
	}

	c.pdf.SetXY(layout.Margin, y+layout.PillHeight)
}
