// Package layout holds the page geometry and text-measurement primitives
// shared by the preview and export engines. Both engines must read their
// numeric constants from here, otherwise their vertical rhythm drifts apart.
package layout

// A4 geometry in PostScript points.
const (
	PageWidth  = 595.28
	PageHeight = 841.89

	// Margin applies to all four sides; BottomBuffer is extra slack above
	// the bottom margin so a block never kisses the page edge.
	Margin       = 48.0
	BottomBuffer = 24.0
)

// Derived content box.
const (
	ContentWidth  = PageWidth - 2*Margin
	ContentHeight = PageHeight - 2*Margin - BottomBuffer
)

// LineHeightFactor converts a font size into the advance of one wrapped line.
const LineHeightFactor = 1.4

// Split-row geometry: left cell (title/organization) against a right-aligned
// date zone. The ratio is shared with the templates' style hints.
const SplitRatio = 0.65

// Skill pill geometry.
const (
	PillPaddingX  = 8.0
	PillHeight    = 16.0
	PillGapX      = 6.0
	PillRowGap    = 6.0
	PillFontSize  = 9.0
	PillRowBudget = 0.75 // fraction of content width one pill row may fill
)

// FontStyle selects one of the three resolved font weights.
type FontStyle struct {
	Bold   bool
	Italic bool
}

// Metrics is the result of measuring a wrapped run of text.
type Metrics struct {
	Width     float64 // widest line, pt
	Height    float64 // total advance of all lines, pt
	LineCount int
}

// Measurer is the text-measurement oracle: wrapped-text geometry as a
// function of text, font, size and available width. The preview engine uses
// a metrics-table implementation; the export engine asks its drawing surface.
type Measurer interface {
	Measure(text string, font FontStyle, size, maxWidth float64) Metrics
}
