package resume

import (
	"encoding/json"
	"testing"
)

func TestFormatMonthYear(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2022-01", "January 2022"},
		{"2019-12", "December 2019"},
		{" 2022-01 ", "January 2022"},
		{"", ""},
		{"2022", ""},
		{"2022-13", ""},
		{"not-a-date", ""},
	}
	for _, tc := range cases {
		if got := FormatMonthYear(tc.in); got != tc.want {
			t.Errorf("FormatMonthYear(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDateRange(t *testing.T) {
	cases := []struct {
		start, end string
		current    bool
		want       string
	}{
		{"2022-01", "2023-03", false, "January 2022 - March 2023"},
		{"2022-01", "", true, "January 2022 - Present"},
		{"2022-01", "2023-03", true, "January 2022 - Present"},
		{"", "", true, "Present"},
		{"2022-01", "", false, "January 2022"},
		{"", "2023-03", false, "March 2023"},
		{"", "", false, ""},
		{"bogus", "junk", false, ""},
	}
	for _, tc := range cases {
		got := FormatDateRange(tc.start, tc.end, tc.current)
		if got != tc.want {
			t.Errorf("FormatDateRange(%q, %q, %v) = %q, want %q", tc.start, tc.end, tc.current, got, tc.want)
		}
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	doc := Document{
		Summary: "  hi  ",
		Skills:  []string{"Go", "  ", "SQL", ""},
		Experience: []Experience{
			{Position: "Engineer"},
			{ID: "existing", Position: "Lead"},
		},
	}
	doc.Normalize()

	if doc.PersonalInfo.FullName != PlaceholderName {
		t.Errorf("FullName = %q, want placeholder %q", doc.PersonalInfo.FullName, PlaceholderName)
	}
	if doc.Summary != "hi" {
		t.Errorf("Summary = %q, want trimmed", doc.Summary)
	}
	if len(doc.Skills) != 2 {
		t.Fatalf("Skills = %v, want blank entries dropped", doc.Skills)
	}
	if doc.Experience[0].ID == "" {
		t.Error("missing experience id was not assigned")
	}
	if doc.Experience[1].ID != "existing" {
		t.Errorf("existing id was rewritten to %q", doc.Experience[1].ID)
	}
}

func TestNewEntryIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewEntryID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate entry id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestSectionConfigSanitize(t *testing.T) {
	cfg := SectionConfig{
		{ID: SectionSkills, Visible: true},
		{ID: "garbage", Visible: true},
		{ID: SectionSummary, Visible: false},
		{ID: SectionSkills, Visible: false}, // duplicate, dropped
	}
	got := cfg.Sanitize()
	want := SectionConfig{
		{ID: SectionSkills, Visible: true},
		{ID: SectionSummary, Visible: false},
	}
	if len(got) != len(want) {
		t.Fatalf("Sanitize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sanitize()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSectionConfigRoundTrip(t *testing.T) {
	cfg := SectionConfig{
		{ID: SectionExperience, Visible: true},
		{ID: SectionSummary, Visible: false},
		{ID: SectionSkills, Visible: true},
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var reloaded SectionConfig
	if err := json.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	reloaded = reloaded.Sanitize()
	if len(reloaded) != len(cfg) {
		t.Fatalf("round trip changed length: %v", reloaded)
	}
	for i := range cfg {
		if reloaded[i] != cfg[i] {
			t.Errorf("round trip changed entry %d: %v != %v", i, reloaded[i], cfg[i])
		}
	}
}

func TestSanitizeEmptyFallsBack(t *testing.T) {
	got := SectionConfig{}.Sanitize()
	if len(got) != 6 {
		t.Fatalf("empty config should fall back to all sections, got %v", got)
	}
	if got[0].ID != SectionSummary || !got[0].Visible {
		t.Errorf("default order starts with visible summary, got %v", got[0])
	}
}
