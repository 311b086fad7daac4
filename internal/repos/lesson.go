package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/types"
)

type LessonRepo interface {
	ListCatalog(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error)
	ListSummaries(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

// ListCatalog returns the full lesson catalog joined with its subject,
// featured lessons first, then catalog order.
func (r *lessonRepo) ListCatalog(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Lesson
	if err := transaction.WithContext(ctx).
		Preload("Subject").
		Order("is_featured DESC").
		Order("order_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListSummaries returns lessons without the subject join, for aggregation
// paths that only need ids and counters.
func (r *lessonRepo) ListSummaries(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Lesson
	if err := transaction.WithContext(ctx).
		Select("id", "subject_id", "title", "module", "duration_minutes", "difficulty", "subject_tag").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
