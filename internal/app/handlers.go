package app

import (
	"github.com/vestiba/vestiba-backend/internal/handlers"
	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/realtime"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Lessons  *handlers.LessonsHandler
	Tracks   *handlers.TracksHandler
	Quiz     *handlers.QuizHandler
	Overview *handlers.OverviewHandler
	SSE      *handlers.SSEHandler
}

func wireHandlers(log *logger.Logger, services Services, hub *realtime.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(services.Auth, services.Registry),
		Lessons:  handlers.NewLessonsHandler(services.Registry),
		Tracks:   handlers.NewTracksHandler(services.Tracks),
		Quiz:     handlers.NewQuizHandler(services.Quiz),
		Overview: handlers.NewOverviewHandler(services.Overview),
		SSE:      handlers.NewSSEHandler(log, hub),
	}
}
