package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/repos"
	"github.com/vestiba/vestiba-backend/internal/session"
	"github.com/vestiba/vestiba-backend/internal/types"
)

// CatalogService adapts the lesson and progress repos to the session
// store's Source boundary. It owns no business logic.
type CatalogService interface {
	session.Source
}

type catalogService struct {
	log          *logger.Logger
	lessonRepo   repos.LessonRepo
	progressRepo repos.LessonProgressRepo
}

func NewCatalogService(log *logger.Logger, lessonRepo repos.LessonRepo, progressRepo repos.LessonProgressRepo) CatalogService {
	return &catalogService{
		log:          log.With("service", "CatalogService"),
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
	}
}

func (s *catalogService) ListCatalog(ctx context.Context) ([]*types.Lesson, error) {
	return s.lessonRepo.ListCatalog(ctx, nil)
}

func (s *catalogService) ListProgress(ctx context.Context, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.LessonProgress, error) {
	return s.progressRepo.GetByUserAndLessonIDs(ctx, nil, userID, lessonIDs)
}

func (s *catalogService) UpsertProgress(ctx context.Context, row *types.LessonProgress) (*types.LessonProgress, error) {
	return s.progressRepo.Upsert(ctx, nil, row)
}
