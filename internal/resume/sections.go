package resume

// SectionID identifies a renderable resume section.
type SectionID string

const (
	SectionSummary        SectionID = "summary"
	SectionExperience     SectionID = "experience"
	SectionEducation      SectionID = "education"
	SectionSkills         SectionID = "skills"
	SectionProjects       SectionID = "projects"
	SectionCertifications SectionID = "certifications"
)

// SectionRef is one entry of a section configuration: which section, and
// whether it renders at all. Order inside the slice is render order.
type SectionRef struct {
	ID      SectionID `json:"id"`
	Visible bool      `json:"visible"`
}

// SectionConfig is the ordered list of sections a render request covers.
// A hidden section is excluded entirely; no placeholder is emitted.
type SectionConfig []SectionRef

// DefaultSections returns the canonical section order with everything visible.
func DefaultSections() SectionConfig {
	return SectionConfig{
		{ID: SectionSummary, Visible: true},
		{ID: SectionExperience, Visible: true},
		{ID: SectionEducation, Visible: true},
		{ID: SectionSkills, Visible: true},
		{ID: SectionProjects, Visible: true},
		{ID: SectionCertifications, Visible: true},
	}
}

var knownSections = map[SectionID]struct{}{
	SectionSummary:        {},
	SectionExperience:     {},
	SectionEducation:      {},
	SectionSkills:         {},
	SectionProjects:       {},
	SectionCertifications: {},
}

// Sanitize drops unknown and duplicate section ids while preserving order,
// so a config survives a serialize/reload round trip unchanged. An empty
// config falls back to the default order.
func (c SectionConfig) Sanitize() SectionConfig {
	if len(c) == 0 {
		return DefaultSections()
	}
	seen := make(map[SectionID]struct{}, len(c))
	out := make(SectionConfig, 0, len(c))
	for _, ref := range c {
		if _, ok := knownSections[ref.ID]; !ok {
			continue
		}
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		seen[ref.ID] = struct{}{}
		out = append(out, ref)
	}
	if len(out) == 0 {
		return DefaultSections()
	}
	return out
}
