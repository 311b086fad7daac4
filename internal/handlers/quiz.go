package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vestiba/vestiba-backend/internal/repos"
	"github.com/vestiba/vestiba-backend/internal/services"
)

type QuizHandler struct {
	svc services.QuizService
}

func NewQuizHandler(svc services.QuizService) *QuizHandler {
	return &QuizHandler{svc: svc}
}

// GET /api/quiz?exam=ENEM&subject=matematica
func (h *QuizHandler) List(c *gin.Context) {
	filters := repos.QuizFilters{
		Exam:    c.Query("exam"),
		Subject: c.Query("subject"),
	}

	set, err := h.svc.Load(c.Request.Context(), filters)
	if err != nil {
		RespondError(c, http.StatusBadGateway, "quiz_load_failed", fmt.Errorf("Nao foi possivel carregar os quizzes."))
		return
	}
	RespondOK(c, gin.H{
		"questions":       set.Questions,
		"exams":           set.CountsByExam(),
		"subjects":        set.CountsBySubject(),
		"random_question": set.Random(),
	})
}
