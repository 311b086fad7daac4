package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vestiba/vestiba-backend/internal/requestdata"
	"github.com/vestiba/vestiba-backend/internal/services"
)

type OverviewHandler struct {
	svc services.OverviewService
}

func NewOverviewHandler(svc services.OverviewService) *OverviewHandler {
	return &OverviewHandler{svc: svc}
}

// GET /api/progress/overview
func (h *OverviewHandler) Get(c *gin.Context) {
	result, err := h.svc.Load(c.Request.Context(), requestdata.UserID(c.Request.Context()))
	if err != nil {
		RespondError(c, http.StatusBadGateway, "overview_load_failed", fmt.Errorf("Nao foi possivel carregar o progresso."))
		return
	}
	RespondOK(c, result)
}
