package types

import (
	"time"

	"github.com/google/uuid"
)

// DailyStudyStat is an externally-written summary row. The app consumes it
// read-only for the overview screen; it is never a source of truth for
// completion counts.
type DailyStudyStat struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index:idx_daily_stat_user_day,unique" json:"user_id"`
	Day              time.Time `gorm:"column:day;type:date;not null;index:idx_daily_stat_user_day,unique" json:"day"`
	Minutes          int       `gorm:"column:minutes;not null;default:0" json:"minutes"`
	CompletedLessons int       `gorm:"column:completed_lessons;not null;default:0" json:"completed_lessons"`
	Streak           int       `gorm:"column:streak;not null;default:0" json:"streak"`
}

func (DailyStudyStat) TableName() string { return "daily_study_stats" }
