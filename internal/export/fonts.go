package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
)

// ErrFontUnavailable marks a failed font resolution. It surfaces as a 500:
// the operator misconfigured the font directory, the caller cannot fix it.
var ErrFontUnavailable = errors.New("font resource unavailable")

const customFamily = "resume"

// The three weights every export render needs, by file name inside the
// configured font directory.
var fontFiles = []struct {
	style string
	file  string
}{
	{"", "regular.ttf"},
	{"B", "bold.ttf"},
	{"I", "italic.ttf"},
}

// resolveFonts registers the three font weights on the drawing surface and
// returns the family name to draw with. It runs before any drawing: a
// missing weight aborts the whole export with a descriptive error and zero
// output bytes. An empty dir resolves the built-in Helvetica core faces.
func resolveFonts(pdf *fpdf.Fpdf, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "Helvetica", nil
	}

	var missing []string
	for _, f := range fontFiles {
		path := filepath.Join(dir, f.file)
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, f.file)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s in %s", ErrFontUnavailable, strings.Join(missing, ", "), dir)
	}

	for _, f := range fontFiles {
		pdf.AddUTF8Font(customFamily, f.style, filepath.Join(dir, f.file))
	}
	if pdf.Err() {
		return "", fmt.Errorf("%w: %v", ErrFontUnavailable, pdf.Error())
	}
	return customFamily, nil
}
