package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email       string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Password    string         `gorm:"column:password;not null" json:"-"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	ExamTargets datatypes.JSON `gorm:"type:jsonb;column:exam_targets" json:"exam_targets"`
	Weaknesses  datatypes.JSON `gorm:"type:jsonb;column:weaknesses" json:"weaknesses"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "users" }
