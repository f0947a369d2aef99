package layout

import "strings"

// Character widths for the Helvetica core faces in 1/1000 font-size units,
// ASCII 0x20..0x7E. Oblique shares the upright widths. Runes outside the
// table fall back to the '?' width, mirroring what FPDF-style surfaces do.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333,
	278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278,
	584, 584, 584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, 722, 278,
	500, 667, 556, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944,
	667, 667, 611, 278, 278, 278, 469, 556, 333, 556, 556, 500, 556, 556,
	278, 556, 556, 222, 222, 500, 222, 833, 556, 556, 556, 556, 333, 500,
	278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

var helveticaBoldWidths = [95]int{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333,
	278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333,
	584, 584, 584, 611, 975, 722, 722, 722, 722, 667, 611, 778, 722, 278,
	556, 722, 611, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944,
	667, 667, 611, 333, 278, 333, 584, 556, 333, 556, 611, 556, 611, 556,
	333, 611, 611, 278, 278, 556, 278, 889, 611, 611, 611, 611, 389, 556,
	333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

// CoreMeasurer measures text against the embedded Helvetica tables. It is
// the preview engine's layout oracle and needs no rendering surface, so it
// is safe for concurrent use and cheap to call per keystroke.
type CoreMeasurer struct{}

func runeWidth(table *[95]int, r rune) int {
	if r < 0x20 || r > 0x7E {
		return table['?'-0x20]
	}
	return table[r-0x20]
}

// StringWidth returns the unwrapped width of s at the given size.
func (CoreMeasurer) StringWidth(s string, font FontStyle, size float64) float64 {
	table := &helveticaWidths
	if font.Bold {
		table = &helveticaBoldWidths
	}
	total := 0
	for _, r := range s {
		total += runeWidth(table, r)
	}
	return float64(total) * size / 1000
}

// Measure wraps text greedily at maxWidth and reports the resulting box.
func (m CoreMeasurer) Measure(text string, font FontStyle, size, maxWidth float64) Metrics {
	lines := m.Wrap(text, font, size, maxWidth)
	widest := 0.0
	for _, line := range lines {
		if w := m.StringWidth(line, font, size); w > widest {
			widest = w
		}
	}
	return Metrics{
		Width:     widest,
		Height:    float64(len(lines)) * size * LineHeightFactor,
		LineCount: len(lines),
	}
}

// Wrap splits text into lines that fit maxWidth, breaking at spaces. A
// single word wider than the line is emitted on its own overlong line
// rather than being chopped mid-word. Empty text wraps to one blank line.
func (m CoreMeasurer) Wrap(text string, font FontStyle, size, maxWidth float64) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if m.StringWidth(candidate, font, size) > maxWidth {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}
