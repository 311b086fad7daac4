package app

import (
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/realtime"
	"github.com/vestiba/vestiba-backend/internal/realtime/bus"
	"github.com/vestiba/vestiba-backend/internal/services"
	"github.com/vestiba/vestiba-backend/internal/session"
)

type Services struct {
	Auth     services.AuthService
	Catalog  services.CatalogService
	Tracks   services.TrackService
	Quiz     services.QuizService
	Overview services.OverviewService

	Registry *session.Registry
	Bus      bus.Bus
	Notifier *realtime.BusNotifier
	Trigger  *realtime.ResyncTrigger
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, hub *realtime.Hub) (Services, error) {
	log.Info("Wiring services...")

	authService := services.NewAuthService(
		db, log,
		reposet.User, reposet.UserToken,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	catalogService := services.NewCatalogService(log, reposet.Lesson, reposet.LessonProgress)
	trackService := services.NewTrackService(log, reposet.StudyTrack)
	quizService := services.NewQuizService(log, reposet.QuizQuestion, rand.New(rand.NewSource(time.Now().UnixNano())))
	overviewService := services.NewOverviewService(log, reposet.Subject, reposet.Lesson, reposet.LessonProgress, reposet.DailyStudyStat)

	resyncBus, err := bus.NewRedisBus(log)
	if err != nil {
		return Services{}, err
	}
	notifier := realtime.NewBusNotifier(log, resyncBus)

	registry := session.NewRegistry(log, cfg.Session, session.SystemClock(), catalogService, notifier)
	trigger := realtime.NewResyncTrigger(log, registry, hub)

	return Services{
		Auth:     authService,
		Catalog:  catalogService,
		Tracks:   trackService,
		Quiz:     quizService,
		Overview: overviewService,
		Registry: registry,
		Bus:      resyncBus,
		Notifier: notifier,
		Trigger:  trigger,
	}, nil
}
