package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProgressStatusTodo       = "todo"
	ProgressStatusInProgress = "in_progress"
	ProgressStatusDone       = "done"
)

// LessonProgress is a user's completion record for one lesson. At most one
// row exists per (user_id, lesson_id); the composite unique index backs the
// upsert conflict target. Rows are never hard-deleted by the app: clearing a
// completion writes status=todo / percent=0 instead.
type LessonProgress struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_lesson_progress_user_lesson,unique" json:"user_id"`
	User            *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	LessonID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_lesson_progress_user_lesson,unique" json:"lesson_id"`
	Lesson          *Lesson    `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	PercentComplete int        `gorm:"column:percent_complete;not null;default:0" json:"percent_complete"`
	Status          string     `gorm:"column:status;not null;default:'todo'" json:"status"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }
