package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an account that owns resumes.
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:64"`
	PasswordHash string   `gorm:"size:255"`
	Resumes      []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume stores one saved draft: the document itself plus the render
// configuration (template name and section order/visibility) as JSONB.
// PdfURL/Status track the async export pipeline.
type Resume struct {
	gorm.Model
	Title    string         `gorm:"size:255"`
	Content  datatypes.JSON `gorm:"type:jsonb"` // resume.Document
	Sections datatypes.JSON `gorm:"type:jsonb"` // resume.SectionConfig
	Template string         `gorm:"size:64"`
	UserID   uint           `gorm:"index"`
	User     User           `gorm:"constraint:OnDelete:CASCADE"`
	PdfURL   string         `gorm:"size:512"`
	Status   string         `gorm:"size:32"`
}

// Export statuses stored in Resume.Status.
const (
	StatusDraft     = "draft"
	StatusQueued    = "queued"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
