package template

import (
	"errors"
	"fmt"
	"strings"

	"cvpress/internal/layout"
	"cvpress/internal/resume"
)

// ErrUnknownTemplate reports an unsupported template name.
var ErrUnknownTemplate = errors.New("unknown template")

// Definition is one named visual style. All fields are content-shaping
// hints; the geometric constants live in the layout package.
type Definition struct {
	name             string
	nameSize         float64
	contactSize      float64
	headingSize      float64
	subSize          float64
	bodySize         float64
	headingUppercase bool
	centeredHeader   bool
	italicOrg        bool
	headingSpacing   float64
	entrySpacing     float64
}

var definitions = map[string]*Definition{
	"classic": {
		name:           "classic",
		nameSize:       18,
		contactSize:    10,
		headingSize:    14,
		subSize:        11,
		bodySize:       11,
		centeredHeader: true,
		italicOrg:      true,
		headingSpacing: 6,
		entrySpacing:   10,
	},
	"professional": {
		name:             "professional",
		nameSize:         20,
		contactSize:      10,
		headingSize:      14,
		subSize:          12,
		bodySize:         11,
		headingUppercase: true,
		headingSpacing:   8,
		entrySpacing:     12,
	},
}

// Names lists the supported template names.
func Names() []string {
	return []string{"classic", "professional"}
}

// Lookup reports whether name is a supported template.
func Lookup(name string) (*Definition, bool) {
	def, ok := definitions[name]
	return def, ok
}

// Build shapes the document into a block sequence for the named template.
// The document is cloned and normalized internally; the input is never
// mutated. Hidden and empty sections produce no blocks at all.
func Build(name string, doc *resume.Document, sections resume.SectionConfig) ([]Block, error) {
	def, ok := definitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	if doc == nil {
		return nil, errors.New("missing resume document")
	}

	d := doc.Clone()
	d.Normalize()
	cfg := sections.Sanitize()

	blocks := []Block{def.header(&d)}
	for _, ref := range cfg {
		if !ref.Visible || d.IsEmpty(ref.ID) {
			continue
		}
		blocks = append(blocks, def.section(&d, ref.ID)...)
	}
	return blocks, nil
}

func (def *Definition) header(d *resume.Document) Block {
	lines := []Line{{
		Left: d.PersonalInfo.FullName,
		Size: def.nameSize,
		Bold: true,
	}}
	if contact := joinContact(d.PersonalInfo.Email, d.PersonalInfo.Phone, d.PersonalInfo.Location); contact != "" {
		lines = append(lines, Line{Left: contact, Size: def.contactSize})
	}
	if links := joinContact(d.PersonalInfo.Website, d.PersonalInfo.LinkedIn, d.PersonalInfo.GitHub); links != "" {
		lines = append(lines, Line{Left: links, Size: def.contactSize})
	}
	return Block{
		Kind:  KindHeader,
		Lines: lines,
		Style: Style{
			FontSize:     def.nameSize,
			Bold:         true,
			Centered:     def.centeredHeader,
			SpacingAfter: def.entrySpacing + 4,
		},
	}
}

func (def *Definition) section(d *resume.Document, id resume.SectionID) []Block {
	heading := Block{
		Kind:    KindHeading,
		Section: id,
		Heading: sectionTitle(id),
		Style: Style{
			FontSize:     def.headingSize,
			Bold:         true,
			Uppercase:    def.headingUppercase,
			SpacingAfter: def.headingSpacing,
		},
	}
	blocks := []Block{heading}

	switch id {
	case resume.SectionSummary:
		blocks = append(blocks, Block{
			Kind:    KindParagraph,
			Section: id,
			Lines:   []Line{{Left: d.Summary, Size: def.bodySize, Wrap: true}},
			Style: Style{
				FontSize:     def.bodySize,
				SpacingAfter: def.entrySpacing,
				Protected:    true,
			},
		})
	case resume.SectionExperience:
		for _, exp := range d.Experience {
			blocks = append(blocks, def.experienceEntry(exp))
		}
	case resume.SectionEducation:
		for _, edu := range d.Education {
			blocks = append(blocks, def.educationEntry(edu))
		}
	case resume.SectionSkills:
		blocks = append(blocks, Block{
			Kind:    KindPills,
			Section: id,
			Pills:   d.Skills,
			Style: Style{
				FontSize:     layout.PillFontSize,
				SpacingAfter: def.entrySpacing,
				Protected:    true,
			},
		})
	case resume.SectionProjects:
		for _, p := range d.Projects {
			blocks = append(blocks, def.projectEntry(p))
		}
	case resume.SectionCertifications:
		for _, cert := range d.Certifications {
			blocks = append(blocks, def.certificationEntry(cert))
		}
	}
	return blocks
}

func (def *Definition) experienceEntry(exp resume.Experience) Block {
	lines := []Line{{
		Left:  exp.Position,
		Right: resume.FormatDateRange(exp.StartDate, exp.EndDate, exp.Current),
		Size:  def.subSize,
		Bold:  true,
	}}
	if exp.Company != "" {
		lines = append(lines, Line{Left: exp.Company, Size: def.subSize, Italic: def.italicOrg})
	}
	if exp.Description != "" {
		lines = append(lines, Line{Left: exp.Description, Size: def.bodySize, Wrap: true})
	}
	return def.entry(resume.SectionExperience, lines)
}

func (def *Definition) educationEntry(edu resume.Education) Block {
	title := edu.Degree
	if edu.Field != "" {
		if title != "" {
			title += " in " + edu.Field
		} else {
			title = edu.Field
		}
	}
	lines := []Line{{
		Left:  title,
		Right: resume.FormatDateRange(edu.StartDate, edu.EndDate, edu.Current),
		Size:  def.subSize,
		Bold:  true,
	}}
	if edu.Institution != "" {
		lines = append(lines, Line{Left: edu.Institution, Size: def.subSize, Italic: def.italicOrg})
	}
	if edu.GPA != "" {
		lines = append(lines, Line{Left: "GPA: " + edu.GPA, Size: def.bodySize})
	}
	return def.entry(resume.SectionEducation, lines)
}

func (def *Definition) projectEntry(p resume.Project) Block {
	lines := []Line{{Left: p.Name, Size: def.subSize, Bold: true}}
	if p.Technologies != "" {
		lines = append(lines, Line{Left: p.Technologies, Size: def.bodySize, Italic: true})
	}
	if p.Description != "" {
		lines = append(lines, Line{Left: p.Description, Size: def.bodySize, Wrap: true})
	}
	return def.entry(resume.SectionProjects, lines)
}

func (def *Definition) certificationEntry(cert resume.Certification) Block {
	lines := []Line{{
		Left:  cert.Name,
		Right: resume.FormatMonthYear(cert.Date),
		Size:  def.subSize,
		Bold:  true,
	}}
	if cert.Issuer != "" {
		lines = append(lines, Line{Left: cert.Issuer, Size: def.bodySize, Italic: def.italicOrg})
	}
	return def.entry(resume.SectionCertifications, lines)
}

func (def *Definition) entry(id resume.SectionID, lines []Line) Block {
	return Block{
		Kind:    KindEntry,
		Section: id,
		Lines:   lines,
		Style: Style{
			FontSize:     def.subSize,
			SpacingAfter: def.entrySpacing,
			SplitRatio:   layout.SplitRatio,
		},
	}
}

func sectionTitle(id resume.SectionID) string {
	switch id {
	case resume.SectionSummary:
		return "Summary"
	case resume.SectionExperience:
		return "Experience"
	case resume.SectionEducation:
		return "Education"
	case resume.SectionSkills:
		return "Skills"
	case resume.SectionProjects:
		return "Projects"
	case resume.SectionCertifications:
		return "Certifications"
	default:
		return string(id)
	}
}

func joinContact(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "  |  ")
}
