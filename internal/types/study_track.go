package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TrackItemKindLesson   = "lesson"
	TrackItemKindResource = "resource"
)

// StudyTrack is an ordered sequence of lessons and standalone resources
// grouped as a study path. Read-only from the app's perspective.
type StudyTrack struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug        string           `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Title       string           `gorm:"column:title;not null" json:"title"`
	Description string           `gorm:"column:description" json:"description,omitempty"`
	Exam        string           `gorm:"column:exam" json:"exam,omitempty"`
	Items       []StudyTrackItem `gorm:"foreignKey:TrackID;references:ID" json:"items"`
	CreatedAt   time.Time        `gorm:"not null;default:now()" json:"created_at"`
}

func (StudyTrack) TableName() string { return "study_tracks" }

// StudyTrackItem is one step of a track: either a lesson reference or a
// standalone resource (title/description/url/estimated minutes).
type StudyTrackItem struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TrackID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"track_id"`
	Kind             string      `gorm:"column:kind;not null" json:"kind"`
	OrderIndex       int         `gorm:"column:order_index;not null;default:0" json:"order_index"`
	LessonID         *uuid.UUID  `gorm:"type:uuid;index" json:"lesson_id,omitempty"`
	Lesson           *Lesson     `gorm:"constraint:OnDelete:SET NULL;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	Title            string      `gorm:"column:title" json:"title,omitempty"`
	Description      string      `gorm:"column:description" json:"description,omitempty"`
	URL              string      `gorm:"column:url" json:"url,omitempty"`
	EstimatedMinutes int         `gorm:"column:estimated_minutes;not null;default:0" json:"estimated_minutes"`
	CreatedAt        time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (StudyTrackItem) TableName() string { return "study_track_items" }
