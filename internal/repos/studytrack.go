package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/types"
)

type StudyTrackRepo interface {
	ListWithItems(ctx context.Context, tx *gorm.DB) ([]*types.StudyTrack, error)
}

type studyTrackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudyTrackRepo(db *gorm.DB, baseLog *logger.Logger) StudyTrackRepo {
	return &studyTrackRepo{db: db, log: baseLog.With("repo", "StudyTrackRepo")}
}

// ListWithItems returns every track with its ordered items, each item
// carrying its lesson and that lesson's subject when the item references
// one. Tracks sort by title, items by their order index.
func (r *studyTrackRepo) ListWithItems(ctx context.Context, tx *gorm.DB) ([]*types.StudyTrack, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.StudyTrack
	if err := transaction.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("study_track_items.order_index ASC")
		}).
		Preload("Items.Lesson").
		Preload("Items.Lesson.Subject").
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
