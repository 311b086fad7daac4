package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vestiba/vestiba-backend/internal/handlers"
	"github.com/vestiba/vestiba-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins []string

	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	LessonsHandler  *handlers.LessonsHandler
	TracksHandler   *handlers.TracksHandler
	QuizHandler     *handlers.QuizHandler
	OverviewHandler *handlers.OverviewHandler
	SSEHandler      *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	// Lessons
	protected.GET("/lessons", cfg.LessonsHandler.List)
	protected.POST("/lessons/refresh", cfg.LessonsHandler.Refresh)
	protected.POST("/lessons/:id/toggle", cfg.LessonsHandler.Toggle)
	// Tracks
	protected.GET("/tracks", cfg.TracksHandler.List)
	protected.GET("/tracks/resources", cfg.TracksHandler.Resources)
	protected.GET("/tracks/:slug", cfg.TracksHandler.GetBySlug)
	// Quiz
	protected.GET("/quiz", cfg.QuizHandler.List)
	// Progress
	protected.GET("/progress/overview", cfg.OverviewHandler.Get)
	// SSE
	protected.GET("/sse/stream", cfg.SSEHandler.Stream)

	return router
}
