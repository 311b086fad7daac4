package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/types"
)

type DailyStudyStatRepo interface {
	RecentForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, days int) ([]*types.DailyStudyStat, error)
}

type dailyStudyStatRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyStudyStatRepo(db *gorm.DB, baseLog *logger.Logger) DailyStudyStatRepo {
	return &dailyStudyStatRepo{db: db, log: baseLog.With("repo", "DailyStudyStatRepo")}
}

// RecentForUser returns the newest rows first, so index 0 is today when a
// row for today exists.
func (r *dailyStudyStatRepo) RecentForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, days int) ([]*types.DailyStudyStat, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DailyStudyStat
	if userID == uuid.Nil || days <= 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day DESC").
		Limit(days).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
