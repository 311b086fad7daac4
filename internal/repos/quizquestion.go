package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/types"
)

// QuizFilters narrows the question list by exact exam and/or subject tag.
// Empty fields are ignored.
type QuizFilters struct {
	Exam    string
	Subject string
}

type QuizQuestionRepo interface {
	List(ctx context.Context, tx *gorm.DB, filters QuizFilters) ([]*types.QuizQuestion, error)
}

type quizQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuizQuestionRepo {
	return &quizQuestionRepo{db: db, log: baseLog.With("repo", "QuizQuestionRepo")}
}

func (r *quizQuestionRepo) List(ctx context.Context, tx *gorm.DB, filters QuizFilters) ([]*types.QuizQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&types.QuizQuestion{})
	if exam := strings.TrimSpace(filters.Exam); exam != "" {
		query = query.Where("exam = ?", exam)
	}
	if subject := strings.TrimSpace(filters.Subject); subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var results []*types.QuizQuestion
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
