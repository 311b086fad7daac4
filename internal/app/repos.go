package app

import (
	"gorm.io/gorm"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/repos"
)

type Repos struct {
	User           repos.UserRepo
	UserToken      repos.UserTokenRepo
	Subject        repos.SubjectRepo
	Lesson         repos.LessonRepo
	LessonProgress repos.LessonProgressRepo
	StudyTrack     repos.StudyTrackRepo
	QuizQuestion   repos.QuizQuestionRepo
	DailyStudyStat repos.DailyStudyStatRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		UserToken:      repos.NewUserTokenRepo(db, log),
		Subject:        repos.NewSubjectRepo(db, log),
		Lesson:         repos.NewLessonRepo(db, log),
		LessonProgress: repos.NewLessonProgressRepo(db, log),
		StudyTrack:     repos.NewStudyTrackRepo(db, log),
		QuizQuestion:   repos.NewQuizQuestionRepo(db, log),
		DailyStudyStat: repos.NewDailyStudyStatRepo(db, log),
	}
}
