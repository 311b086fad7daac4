package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizQuestion is one bank entry. CorrectIndex is 1-based on the wire, as
// published by the content pipeline.
type QuizQuestion struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Exam         string         `gorm:"column:exam;index" json:"exam"`
	Subject      string         `gorm:"column:subject;index" json:"subject"`
	Difficulty   string         `gorm:"column:difficulty" json:"difficulty"`
	Question     string         `gorm:"column:question;not null" json:"question"`
	Options      datatypes.JSON `gorm:"type:jsonb;column:options;not null" json:"options"`
	CorrectIndex int            `gorm:"column:correct_index;not null" json:"correct_index"`
	Explanation  string         `gorm:"column:explanation" json:"explanation,omitempty"`
	ReferenceURL string         `gorm:"column:reference_url" json:"reference_url,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (QuizQuestion) TableName() string { return "quiz_questions" }
