package types

import (
	"time"

	"github.com/google/uuid"
)

// Lesson is a single catalog video/content unit belonging to a subject.
// Read-only from the app's perspective.
type Lesson struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SubjectID       uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject         *Subject  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	Title           string    `gorm:"column:title;not null" json:"title"`
	Module          string    `gorm:"column:module" json:"module"`
	OrderIndex      int       `gorm:"column:order_index;not null;default:0" json:"order_index"`
	DurationMinutes int       `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
	Difficulty      string    `gorm:"column:difficulty" json:"difficulty"`
	SubjectTag      string    `gorm:"column:subject_tag;index" json:"subject_tag"`
	Description     string    `gorm:"column:description" json:"description,omitempty"`
	VideoURL        string    `gorm:"column:video_url" json:"video_url,omitempty"`
	ThumbnailURL    string    `gorm:"column:thumbnail_url" json:"thumbnail_url,omitempty"`
	ResourceURL     string    `gorm:"column:resource_url" json:"resource_url,omitempty"`
	IsFeatured      bool      `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Lesson) TableName() string { return "lessons" }
