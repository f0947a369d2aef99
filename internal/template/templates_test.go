package template

import (
	"errors"
	"testing"

	"cvpress/internal/resume"
)

func sampleDoc() *resume.Document {
	return &resume.Document{
		PersonalInfo: resume.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"},
		Summary:      "Engineer and analyst.",
		Experience: []resume.Experience{{
			ID:        "e1",
			Position:  "Software Engineer",
			Company:   "Acme",
			StartDate: "2022-01",
			Current:   true,
		}},
		Skills: []string{"Go", "SQL"},
	}
}

func TestBuildUnknownTemplate(t *testing.T) {
	_, err := Build("fancy", sampleDoc(), nil)
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("err = %v, want ErrUnknownTemplate", err)
	}
}

func TestBuildMissingDocument(t *testing.T) {
	if _, err := Build("classic", nil, nil); err == nil {
		t.Fatal("expected error for nil document")
	}
}

func TestBuildHeaderAlwaysFirst(t *testing.T) {
	for _, name := range Names() {
		blocks, err := Build(name, &resume.Document{}, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(blocks) == 0 || blocks[0].Kind != KindHeader {
			t.Fatalf("%s: first block should be the header, got %+v", name, blocks)
		}
		if blocks[0].Lines[0].Left != resume.PlaceholderName {
			t.Errorf("%s: empty document should use the placeholder name, got %q", name, blocks[0].Lines[0].Left)
		}
	}
}

func TestBuildSkipsHiddenAndEmptySections(t *testing.T) {
	doc := sampleDoc()
	cfg := resume.SectionConfig{
		{ID: resume.SectionSummary, Visible: false},
		{ID: resume.SectionExperience, Visible: true},
		{ID: resume.SectionProjects, Visible: true}, // empty in doc
	}
	blocks, err := Build("professional", doc, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range blocks {
		if b.Section == resume.SectionSummary {
			t.Error("hidden summary still produced a block")
		}
		if b.Section == resume.SectionProjects {
			t.Error("empty projects section still produced a block")
		}
	}
}

func TestBuildSectionOrderFollowsConfig(t *testing.T) {
	doc := sampleDoc()
	cfg := resume.SectionConfig{
		{ID: resume.SectionSkills, Visible: true},
		{ID: resume.SectionSummary, Visible: true},
	}
	blocks, err := Build("classic", doc, cfg)
	if err != nil {
		t.Fatal(err)
	}
	var order []resume.SectionID
	for _, b := range blocks {
		if b.Kind == KindHeading {
			order = append(order, b.Section)
		}
	}
	if len(order) != 2 || order[0] != resume.SectionSkills || order[1] != resume.SectionSummary {
		t.Errorf("section order = %v, want [skills summary]", order)
	}
}

func TestBuildExperienceEntry(t *testing.T) {
	blocks, err := Build("professional", sampleDoc(), resume.SectionConfig{
		{ID: resume.SectionExperience, Visible: true},
	})
	if err != nil {
		t.Fatal(err)
	}

	var entry *Block
	for i := range blocks {
		if blocks[i].Kind == KindEntry {
			entry = &blocks[i]
			break
		}
	}
	if entry == nil {
		t.Fatal("no entry block produced")
	}
	first := entry.Lines[0]
	if first.Left != "Software Engineer" || !first.Bold {
		t.Errorf("title line = %+v, want bold position", first)
	}
	if first.Right != "January 2022 - Present" {
		t.Errorf("date zone = %q, want %q", first.Right, "January 2022 - Present")
	}
	if entry.Style.SplitRatio != 0.65 {
		t.Errorf("split ratio = %f, want 0.65", entry.Style.SplitRatio)
	}
	if entry.Lines[1].Left != "Acme" {
		t.Errorf("second line = %q, want company", entry.Lines[1].Left)
	}
}

func TestBuildProtectedBlocks(t *testing.T) {
	blocks, err := Build("classic", sampleDoc(), nil)
	if err != nil {
		t.Fatal(err)
	}
	protected := map[BlockKind]bool{}
	for _, b := range blocks {
		if b.Style.Protected {
			protected[b.Kind] = true
		}
	}
	if !protected[KindParagraph] || !protected[KindPills] {
		t.Errorf("summary and skills must be protected, got %v", protected)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	doc := &resume.Document{Skills: []string{" Go ", ""}}
	if _, err := Build("classic", doc, nil); err != nil {
		t.Fatal(err)
	}
	if doc.PersonalInfo.FullName != "" || len(doc.Skills) != 2 {
		t.Errorf("input document was mutated: %+v", doc)
	}
}
