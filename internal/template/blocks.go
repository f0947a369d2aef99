// Package template turns a resume document plus a section configuration into
// an ordered run of styled blocks. Templates only shape content; pagination
// belongs to the engines, which both consume the same block sequence so that
// divergence stays confined to their measurement backends.
package template

import (
	"cvpress/internal/layout"
	"cvpress/internal/resume"
)

// BlockKind classifies the atomic pagination units.
type BlockKind string

const (
	KindHeader    BlockKind = "header"    // name + contact lines
	KindHeading   BlockKind = "heading"   // one section title
	KindParagraph BlockKind = "paragraph" // the summary body
	KindEntry     BlockKind = "entry"     // one job, degree, project or certificate
	KindPills     BlockKind = "pills"     // the skill tag group
)

// Style carries the hints a renderer needs to place a block: font tier,
// weight flags, trailing spacing and the left/right column split. Protected
// blocks must never be split across pages, even by a renderer capable of
// finer-grained breaking.
type Style struct {
	FontSize     float64
	Bold         bool
	Italic       bool
	Uppercase    bool
	Centered     bool
	SpacingAfter float64
	SplitRatio   float64
	Protected    bool
}

// Line is one row inside a block. A non-empty Right renders right-aligned
// inside the date zone (the rightmost 1-SplitRatio of the content width).
// Wrap marks body text that may flow over multiple rendered lines; rows
// with Wrap unset are single-line (titles, organizations, date pairs).
type Line struct {
	Left   string
	Right  string
	Size   float64
	Bold   bool
	Italic bool
	Wrap   bool
}

// Block is the atomic unit of pagination.
type Block struct {
	Kind    BlockKind
	Section resume.SectionID
	Heading string
	Lines   []Line
	Pills   []string
	Style   Style
}

// FontStyle maps a line's weight flags onto the measurement font.
func (l Line) FontStyle() layout.FontStyle {
	return layout.FontStyle{Bold: l.Bold, Italic: l.Italic}
}
