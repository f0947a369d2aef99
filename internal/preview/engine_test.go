package preview

import (
	"fmt"
	"strings"
	"testing"

	"cvpress/internal/layout"
	"cvpress/internal/resume"
	"cvpress/internal/template"
)

func minimalDoc() *resume.Document {
	return &resume.Document{
		PersonalInfo: resume.PersonalInfo{FullName: "Ada Lovelace"},
	}
}

func TestRenderMinimalDocumentOnePage(t *testing.T) {
	engine := New()
	for _, name := range template.Names() {
		result, err := engine.Render(minimalDoc(), name, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if result.PageCount != 1 || len(result.Pages) != 1 {
			t.Errorf("%s: PageCount = %d, want 1", name, result.PageCount)
		}
		if !strings.Contains(string(result.Pages[0]), "Ada Lovelace") {
			t.Errorf("%s: page fragment missing the name", name)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := New().Render(minimalDoc(), "glossy", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestLongSummaryStaysUnsplit(t *testing.T) {
	doc := minimalDoc()
	doc.Summary = strings.Repeat("A very long summary sentence that keeps going. ", 400)

	engine := New()
	blocks, err := template.Build("classic", doc, resume.SectionConfig{
		{ID: resume.SectionSummary, Visible: true},
	})
	if err != nil {
		t.Fatal(err)
	}

	var paragraphs int
	for _, b := range blocks {
		if b.Kind == template.KindParagraph {
			paragraphs++
			if h := engine.BlockHeight(b); h <= layout.ContentHeight {
				t.Fatalf("test summary should exceed one page, measured %f", h)
			}
		}
	}
	if paragraphs != 1 {
		t.Fatalf("summary produced %d paragraph blocks, want exactly 1", paragraphs)
	}

	// The oversized paragraph must land alone on its page, unsplit.
	result, err := engine.Render(doc, "classic", resume.SectionConfig{
		{ID: resume.SectionSummary, Visible: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	var pagesWithParagraph int
	for _, page := range result.Pages {
		if strings.Contains(string(page), "block-paragraph") {
			pagesWithParagraph++
		}
	}
	if pagesWithParagraph != 1 {
		t.Errorf("paragraph block appears on %d pages, want 1", pagesWithParagraph)
	}
}

func TestPaginationMonotonic(t *testing.T) {
	engine := New()
	doc := minimalDoc()
	prev := 0
	for i := 0; i < 30; i++ {
		doc.Experience = append(doc.Experience, resume.Experience{
			ID:          fmt.Sprintf("e%d", i),
			Position:    "Engineer",
			Company:     "Acme",
			StartDate:   "2020-01",
			EndDate:     "2021-06",
			Description: strings.Repeat("Built and shipped things. ", 10),
		})
		result, err := engine.Render(doc, "professional", nil)
		if err != nil {
			t.Fatal(err)
		}
		if result.PageCount < prev {
			t.Fatalf("adding content decreased page count: %d -> %d", prev, result.PageCount)
		}
		prev = result.PageCount
	}
	if prev < 2 {
		t.Errorf("30 experience entries should span multiple pages, got %d", prev)
	}
}

func TestPillRowsWrapAtBudget(t *testing.T) {
	engine := New()
	var m layout.CoreMeasurer

	budget := layout.ContentWidth * layout.PillRowBudget
	// Build a skill list where the running offset first exceeds the budget
	// at a known index.
	skills := []string{}
	x := 0.0
	wrapped := false
	for i := 0; i < 12; i++ {
		s := fmt.Sprintf("Skill-%02d", i)
		skills = append(skills, s)
		w := m.StringWidth(s, layout.FontStyle{}, layout.PillFontSize) + 2*layout.PillPaddingX
		if !wrapped && x > 0 && x+w > budget {
			wrapped = true
		}
		x += w + layout.PillGapX
	}

	rows := engine.pillRows(skills)
	if wrapped && rows < 2 {
		t.Errorf("pillRows = %d, want wrap once the budget is exceeded", rows)
	}
	if !wrapped && rows != 1 {
		t.Errorf("pillRows = %d, want 1 when everything fits", rows)
	}

	// Row height advances by exactly pill height + row gap per extra row.
	block := template.Block{
		Kind:  template.KindPills,
		Pills: skills,
		Style: template.Style{Protected: true},
	}
	oneRow := template.Block{
		Kind:  template.KindPills,
		Pills: skills[:1],
		Style: template.Style{Protected: true},
	}
	diff := engine.BlockHeight(block) - engine.BlockHeight(oneRow)
	wantDiff := float64(rows-1) * (layout.PillHeight + layout.PillRowGap)
	if diff != wantDiff {
		t.Errorf("row advance = %f, want %f", diff, wantDiff)
	}
}

func TestFragmentMarksProtectedBlocks(t *testing.T) {
	doc := minimalDoc()
	doc.Summary = "Short summary."
	doc.Skills = []string{"Go"}

	result, err := New().Render(doc, "professional", nil)
	if err != nil {
		t.Fatal(err)
	}
	html := string(result.Pages[0])
	if strings.Count(html, `data-protected="true"`) != 2 {
		t.Errorf("expected summary and skills marked protected:\n%s", html)
	}
}

func TestRenderUppercaseHeadings(t *testing.T) {
	doc := minimalDoc()
	doc.Skills = []string{"Go"}
	result, err := New().Render(doc, "professional", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(result.Pages[0]), "SKILLS") {
		t.Error("professional template should uppercase section headings")
	}
}
