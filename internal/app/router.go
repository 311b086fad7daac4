package app

import (
	"github.com/gin-gonic/gin"

	"github.com/vestiba/vestiba-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:    cfg.AllowOrigins,
		AuthHandler:     handlers.Auth,
		AuthMiddleware:  middleware.Auth,
		LessonsHandler:  handlers.Lessons,
		TracksHandler:   handlers.Tracks,
		QuizHandler:     handlers.Quiz,
		OverviewHandler: handlers.Overview,
		SSEHandler:      handlers.SSE,
	})
}
