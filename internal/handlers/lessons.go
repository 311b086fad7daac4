package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vestiba/vestiba-backend/internal/requestdata"
	"github.com/vestiba/vestiba-backend/internal/session"
)

type LessonsHandler struct {
	registry *session.Registry
}

func NewLessonsHandler(registry *session.Registry) *LessonsHandler {
	return &LessonsHandler{registry: registry}
}

// GET /api/lessons
func (h *LessonsHandler) List(c *gin.Context) {
	store := h.registry.ForUser(requestdata.UserID(c.Request.Context()))
	store.EnsureLoaded(c.Request.Context())

	respondLessons(c, store)
}

// POST /api/lessons/:id/toggle
func (h *LessonsHandler) Toggle(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid lesson id"))
		return
	}

	store := h.registry.ForUser(requestdata.UserID(c.Request.Context()))
	store.EnsureLoaded(c.Request.Context())
	store.ToggleCompletion(c.Request.Context(), lessonID)

	respondLessons(c, store)
}

// POST /api/lessons/refresh?silent=true
func (h *LessonsHandler) Refresh(c *gin.Context) {
	store := h.registry.ForUser(requestdata.UserID(c.Request.Context()))
	store.Refresh(c.Request.Context(), c.Query("silent") == "true")

	respondLessons(c, store)
}

func respondLessons(c *gin.Context, store *session.Store) {
	snap := store.Snapshot()
	RespondOK(c, gin.H{
		"loading":            snap.Loading,
		"error":              snap.Error,
		"lessons":            snap.Lessons,
		"toggling":           snap.Toggling,
		"featured_lessons":   store.Featured(),
		"subjects_meta":      store.SubjectsMeta(),
		"lessons_by_subject": store.BySubject(),
	})
}
