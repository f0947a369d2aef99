package resume

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// PlaceholderName is used when a document carries no full name at all.
const PlaceholderName = "Your Name"

var entrySeq atomic.Int64

// NewEntryID produces a unique id for a freshly added list entry. The
// timestamp prefix keeps ids monotonic across processes; the sequence suffix
// disambiguates entries created in the same millisecond. Ids are never
// reused after deletion.
func NewEntryID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + strconv.FormatInt(entrySeq.Add(1), 10)
}

// Normalize trims the document into renderable shape. Missing optional
// fields stay empty, the full name falls back to a placeholder, blank skill
// entries are dropped, and list entries without an id get one assigned.
// Normalize never rejects a document.
func (d *Document) Normalize() {
	d.PersonalInfo.FullName = strings.TrimSpace(d.PersonalInfo.FullName)
	if d.PersonalInfo.FullName == "" {
		d.PersonalInfo.FullName = PlaceholderName
	}
	d.Summary = strings.TrimSpace(d.Summary)

	skills := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	d.Skills = skills

	for i := range d.Experience {
		if d.Experience[i].ID == "" {
			d.Experience[i].ID = NewEntryID()
		}
	}
	for i := range d.Education {
		if d.Education[i].ID == "" {
			d.Education[i].ID = NewEntryID()
		}
	}
	for i := range d.Projects {
		if d.Projects[i].ID == "" {
			d.Projects[i].ID = NewEntryID()
		}
	}
	for i := range d.Certifications {
		if d.Certifications[i].ID == "" {
			d.Certifications[i].ID = NewEntryID()
		}
	}
}

// Clone returns a document whose list fields no longer alias the receiver,
// so renderers can normalize their own copy without touching the original.
func (d Document) Clone() Document {
	out := d
	out.Experience = append([]Experience(nil), d.Experience...)
	out.Education = append([]Education(nil), d.Education...)
	out.Skills = append([]string(nil), d.Skills...)
	out.Projects = append([]Project(nil), d.Projects...)
	out.Certifications = append([]Certification(nil), d.Certifications...)
	return out
}

// IsEmpty reports whether a section has no content worth rendering.
func (d *Document) IsEmpty(id SectionID) bool {
	switch id {
	case SectionSummary:
		return strings.TrimSpace(d.Summary) == ""
	case SectionExperience:
		return len(d.Experience) == 0
	case SectionEducation:
		return len(d.Education) == 0
	case SectionSkills:
		return len(d.Skills) == 0
	case SectionProjects:
		return len(d.Projects) == 0
	case SectionCertifications:
		return len(d.Certifications) == 0
	default:
		return true
	}
}
