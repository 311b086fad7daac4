package types

import (
	"time"

	"github.com/google/uuid"
)

// Subject is read-only catalog data; rows are maintained through an
// external admin path.
type Subject struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	ColorHex  string    `gorm:"column:color_hex" json:"color_hex"`
	Icon      string    `gorm:"column:icon" json:"icon"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Subject) TableName() string { return "subjects" }
