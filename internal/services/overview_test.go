package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vestiba/vestiba-backend/internal/types"
)

type fakeSubjectRepo struct {
	subjects []*types.Subject
}

func (f *fakeSubjectRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Subject, error) {
	return f.subjects, nil
}

type fakeLessonRepo struct {
	lessons []*types.Lesson
}

func (f *fakeLessonRepo) ListCatalog(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
	return f.lessons, nil
}

func (f *fakeLessonRepo) ListSummaries(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
	return f.lessons, nil
}

type fakeProgressRepo struct {
	rows []*types.LessonProgress
}

func (f *fakeProgressRepo) GetByUserAndLessonIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.LessonProgress, error) {
	return f.rows, nil
}

func (f *fakeProgressRepo) ListForUserWithLessons(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LessonProgress, error) {
	return f.rows, nil
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.LessonProgress) (*types.LessonProgress, error) {
	return row, nil
}

type fakeStatRepo struct {
	stats []*types.DailyStudyStat
}

func (f *fakeStatRepo) RecentForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, days int) ([]*types.DailyStudyStat, error) {
	return f.stats, nil
}

func overviewFixture() (*fakeSubjectRepo, *fakeLessonRepo, *fakeProgressRepo, *fakeStatRepo, uuid.UUID) {
	math := &types.Subject{ID: uuid.New(), Slug: "matematica", Name: "Matematica"}
	physics := &types.Subject{ID: uuid.New(), Slug: "fisica", Name: "Fisica"}

	mathLessons := []*types.Lesson{
		{ID: uuid.New(), SubjectID: math.ID, Title: "Funcoes"},
		{ID: uuid.New(), SubjectID: math.ID, Title: "Probabilidade"},
		{ID: uuid.New(), SubjectID: math.ID, Title: "Geometria"},
	}
	physicsLessons := []*types.Lesson{
		{ID: uuid.New(), SubjectID: physics.ID, Title: "Cinematica"},
		{ID: uuid.New(), SubjectID: physics.ID, Title: "Dinamica"},
	}

	userID := uuid.New()
	now := time.Now()
	rows := []*types.LessonProgress{
		{
			ID: uuid.New(), UserID: userID, LessonID: mathLessons[0].ID, Lesson: mathLessons[0],
			PercentComplete: 100, Status: types.ProgressStatusDone, UpdatedAt: now.Add(-time.Hour),
		},
		{
			ID: uuid.New(), UserID: userID, LessonID: mathLessons[1].ID, Lesson: mathLessons[1],
			PercentComplete: 100, Status: types.ProgressStatusDone, UpdatedAt: now,
		},
		{
			ID: uuid.New(), UserID: userID, LessonID: mathLessons[2].ID, Lesson: mathLessons[2],
			PercentComplete: 40, Status: types.ProgressStatusInProgress, UpdatedAt: now.Add(-2 * time.Hour),
		},
	}

	subjects := &fakeSubjectRepo{subjects: []*types.Subject{math, physics}}
	lessons := &fakeLessonRepo{lessons: append(append([]*types.Lesson{}, mathLessons...), physicsLessons...)}
	progress := &fakeProgressRepo{rows: rows}
	stats := &fakeStatRepo{stats: []*types.DailyStudyStat{
		{UserID: userID, Minutes: 30, Streak: 4},
		{UserID: userID, Minutes: 45},
		{UserID: userID, Minutes: 25},
	}}
	return subjects, lessons, progress, stats, userID
}

func TestOverviewAggregatesPerSubject(t *testing.T) {
	subjects, lessons, progress, stats, userID := overviewFixture()
	svc := NewOverviewService(testServiceLogger(t), subjects, lessons, progress, stats)

	result, err := svc.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(result.Subjects) != 2 {
		t.Fatalf("subjects: want=2 got=%d", len(result.Subjects))
	}
	math := result.Subjects[0]
	if math.SubjectSlug != "matematica" || math.TotalLessons != 3 || math.CompletedLessons != 2 {
		t.Fatalf("math rollup: %+v", math)
	}
	// (100 + 100 + 40) / 3 = 80
	if math.Percent != 80 {
		t.Fatalf("math percent: want=80 got=%d", math.Percent)
	}
	physics := result.Subjects[1]
	if physics.TotalLessons != 2 || physics.CompletedLessons != 0 || physics.Percent != 0 {
		t.Fatalf("physics rollup: %+v", physics)
	}

	// Overall is the mean of the subject percents, not of the lessons.
	if result.Overview.OverallPercent != 40 {
		t.Fatalf("overall percent: want=40 got=%d", result.Overview.OverallPercent)
	}
	if result.Overview.CompletedLessons != 2 || result.Overview.TotalLessons != 5 {
		t.Fatalf("overview counts: %+v", result.Overview)
	}
}

func TestOverviewUsesStatRows(t *testing.T) {
	subjects, lessons, progress, stats, userID := overviewFixture()
	svc := NewOverviewService(testServiceLogger(t), subjects, lessons, progress, stats)

	result, err := svc.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if result.Overview.TodayMinutes != 30 || result.Overview.Streak != 4 {
		t.Fatalf("today stats: %+v", result.Overview)
	}
	if result.Overview.WeeklyMinutes != 100 {
		t.Fatalf("weekly minutes: want=100 got=%d", result.Overview.WeeklyMinutes)
	}
}

func TestOverviewRecentActivities(t *testing.T) {
	subjects, lessons, progress, stats, userID := overviewFixture()
	svc := NewOverviewService(testServiceLogger(t), subjects, lessons, progress, stats)

	result, err := svc.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(result.Activities) != 3 {
		t.Fatalf("activities: want=3 got=%d", len(result.Activities))
	}
	// Newest first.
	if result.Activities[0].LessonTitle != "Probabilidade" {
		t.Fatalf("order: %+v", result.Activities)
	}
	if result.Activities[0].SubjectName != "Matematica" {
		t.Fatalf("subject name: %+v", result.Activities[0])
	}
}

func TestOverviewRecentActivityFallbackName(t *testing.T) {
	orphanLesson := &types.Lesson{ID: uuid.New(), SubjectID: uuid.New(), Title: "Redacao"}
	progress := &fakeProgressRepo{rows: []*types.LessonProgress{{
		ID: uuid.New(), LessonID: orphanLesson.ID, Lesson: orphanLesson,
		Status: types.ProgressStatusDone, UpdatedAt: time.Now(),
	}}}
	svc := NewOverviewService(testServiceLogger(t), &fakeSubjectRepo{}, &fakeLessonRepo{}, progress, &fakeStatRepo{})

	result, err := svc.Load(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Activities) != 1 || result.Activities[0].SubjectName != "Conteudo" {
		t.Fatalf("fallback name: %+v", result.Activities)
	}
}

func TestOverviewCapsActivitiesAtFive(t *testing.T) {
	subject := &types.Subject{ID: uuid.New(), Slug: "matematica", Name: "Matematica"}
	var rows []*types.LessonProgress
	for i := 0; i < 8; i++ {
		lesson := &types.Lesson{ID: uuid.New(), SubjectID: subject.ID, Title: "L"}
		rows = append(rows, &types.LessonProgress{
			ID: uuid.New(), LessonID: lesson.ID, Lesson: lesson,
			Status: types.ProgressStatusDone, UpdatedAt: time.Now().Add(-time.Duration(i) * time.Minute),
		})
	}
	svc := NewOverviewService(
		testServiceLogger(t),
		&fakeSubjectRepo{subjects: []*types.Subject{subject}},
		&fakeLessonRepo{}, &fakeProgressRepo{rows: rows}, &fakeStatRepo{},
	)

	result, err := svc.Load(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Activities) != 5 {
		t.Fatalf("activities cap: want=5 got=%d", len(result.Activities))
	}
}

func TestOverviewAnonymousUserIsEmpty(t *testing.T) {
	subjects, lessons, progress, stats, _ := overviewFixture()
	svc := NewOverviewService(testServiceLogger(t), subjects, lessons, progress, stats)

	result, err := svc.Load(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Subjects) != 0 || len(result.Activities) != 0 {
		t.Fatalf("anonymous overview should be empty: %+v", result)
	}
	if result.Overview.OverallPercent != 0 {
		t.Fatalf("anonymous percent: %+v", result.Overview)
	}
}
