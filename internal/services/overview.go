package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/repos"
	"github.com/vestiba/vestiba-backend/internal/types"
)

const (
	recentActivityLimit = 5
	statWindowDays      = 7
)

// SubjectSummary is one subject's completion rollup for the overview
// screen. Percent is the mean of the lesson percents in the subject.
type SubjectSummary struct {
	SubjectID        uuid.UUID `json:"subject_id"`
	SubjectName      string    `json:"subject_name"`
	SubjectSlug      string    `json:"subject_slug"`
	ColorHex         string    `json:"color_hex"`
	Icon             string    `json:"icon"`
	CompletedLessons int       `json:"completed_lessons"`
	TotalLessons     int       `json:"total_lessons"`
	Percent          int       `json:"percent"`
}

type RecentActivity struct {
	ID          uuid.UUID `json:"id"`
	LessonTitle string    `json:"lesson_title"`
	SubjectName string    `json:"subject_name"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Overview struct {
	OverallPercent   int `json:"overall_percent"`
	CompletedLessons int `json:"completed_lessons"`
	TotalLessons     int `json:"total_lessons"`
	TodayMinutes     int `json:"today_minutes"`
	WeeklyMinutes    int `json:"weekly_minutes"`
	Streak           int `json:"streak"`
}

type OverviewResult struct {
	Subjects   []SubjectSummary `json:"subjects"`
	Activities []RecentActivity `json:"activities"`
	Overview   Overview         `json:"overview"`
}

// OverviewService recomputes the completion rollups from the raw
// (lesson x progress) join on every load. The daily_study_stats rows are an
// externally-written summary consumed as-is; they are never treated as the
// source of truth for completion counts.
type OverviewService interface {
	Load(ctx context.Context, userID uuid.UUID) (*OverviewResult, error)
}

type overviewService struct {
	log          *logger.Logger
	subjectRepo  repos.SubjectRepo
	lessonRepo   repos.LessonRepo
	progressRepo repos.LessonProgressRepo
	statRepo     repos.DailyStudyStatRepo
}

func NewOverviewService(
	log *logger.Logger,
	subjectRepo repos.SubjectRepo,
	lessonRepo repos.LessonRepo,
	progressRepo repos.LessonProgressRepo,
	statRepo repos.DailyStudyStatRepo,
) OverviewService {
	return &overviewService{
		log:          log.With("service", "OverviewService"),
		subjectRepo:  subjectRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		statRepo:     statRepo,
	}
}

func (s *overviewService) Load(ctx context.Context, userID uuid.UUID) (*OverviewResult, error) {
	// No signed-in user means no progress, not an error.
	if userID == uuid.Nil {
		return &OverviewResult{Subjects: []SubjectSummary{}, Activities: []RecentActivity{}}, nil
	}

	var (
		subjects     []*types.Subject
		lessons      []*types.Lesson
		progressRows []*types.LessonProgress
		stats        []*types.DailyStudyStat
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		subjects, err = s.subjectRepo.List(groupCtx, nil)
		return err
	})
	group.Go(func() error {
		var err error
		lessons, err = s.lessonRepo.ListSummaries(groupCtx, nil)
		return err
	})
	group.Go(func() error {
		var err error
		progressRows, err = s.progressRepo.ListForUserWithLessons(groupCtx, nil, userID)
		return err
	})
	group.Go(func() error {
		var err error
		stats, err = s.statRepo.RecentForUser(groupCtx, nil, userID, statWindowDays)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	subjectsByID := make(map[uuid.UUID]*types.Subject, len(subjects))
	for _, subject := range subjects {
		subjectsByID[subject.ID] = subject
	}

	progressByLesson := make(map[uuid.UUID]*types.LessonProgress, len(progressRows))
	for _, row := range progressRows {
		if row.LessonID != uuid.Nil {
			progressByLesson[row.LessonID] = row
		}
	}

	type acc struct {
		subject            *types.Subject
		totalLessons       int
		completedLessons   int
		accumulatedPercent int
	}
	accBySubject := make(map[uuid.UUID]*acc)
	var subjectOrder []uuid.UUID

	for _, lesson := range lessons {
		subject, ok := subjectsByID[lesson.SubjectID]
		if !ok {
			continue
		}

		percent := 0
		status := types.ProgressStatusTodo
		if progress := progressByLesson[lesson.ID]; progress != nil {
			percent = progress.PercentComplete
			status = progress.Status
		}
		done := status == types.ProgressStatusDone || percent >= 100

		entry, ok := accBySubject[subject.ID]
		if !ok {
			entry = &acc{subject: subject}
			accBySubject[subject.ID] = entry
			subjectOrder = append(subjectOrder, subject.ID)
		}
		entry.totalLessons++
		entry.accumulatedPercent += percent
		if done {
			entry.completedLessons++
		}
	}

	summaries := make([]SubjectSummary, 0, len(subjectOrder))
	completedLessons := 0
	totalLessons := 0
	percentSum := 0
	for _, subjectID := range subjectOrder {
		entry := accBySubject[subjectID]
		percent := 0
		if entry.totalLessons > 0 {
			percent = int(math.Round(float64(entry.accumulatedPercent) / float64(entry.totalLessons)))
		}
		summaries = append(summaries, SubjectSummary{
			SubjectID:        entry.subject.ID,
			SubjectName:      entry.subject.Name,
			SubjectSlug:      entry.subject.Slug,
			ColorHex:         entry.subject.ColorHex,
			Icon:             entry.subject.Icon,
			CompletedLessons: entry.completedLessons,
			TotalLessons:     entry.totalLessons,
			Percent:          percent,
		})
		completedLessons += entry.completedLessons
		totalLessons += entry.totalLessons
		percentSum += percent
	}

	overview := Overview{
		CompletedLessons: completedLessons,
		TotalLessons:     totalLessons,
	}
	if len(summaries) > 0 {
		overview.OverallPercent = int(math.Round(float64(percentSum) / float64(len(summaries))))
	}
	if len(stats) > 0 {
		overview.TodayMinutes = stats[0].Minutes
		overview.Streak = stats[0].Streak
	}
	for _, stat := range stats {
		overview.WeeklyMinutes += stat.Minutes
	}

	return &OverviewResult{
		Subjects:   summaries,
		Activities: recentActivities(progressRows, subjectsByID),
		Overview:   overview,
	}, nil
}

func recentActivities(progressRows []*types.LessonProgress, subjectsByID map[uuid.UUID]*types.Subject) []RecentActivity {
	withLesson := make([]*types.LessonProgress, 0, len(progressRows))
	for _, row := range progressRows {
		if row.Lesson != nil {
			withLesson = append(withLesson, row)
		}
	}
	sort.SliceStable(withLesson, func(i, j int) bool {
		return withLesson[i].UpdatedAt.After(withLesson[j].UpdatedAt)
	})
	if len(withLesson) > recentActivityLimit {
		withLesson = withLesson[:recentActivityLimit]
	}

	out := make([]RecentActivity, 0, len(withLesson))
	for _, row := range withLesson {
		subjectName := "Conteudo"
		if subject := subjectsByID[row.Lesson.SubjectID]; subject != nil {
			subjectName = subject.Name
		}
		out = append(out, RecentActivity{
			ID:          row.ID,
			LessonTitle: row.Lesson.Title,
			SubjectName: subjectName,
			Status:      row.Status,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return out
}
