package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vestiba/vestiba-backend/internal/services"
)

type TracksHandler struct {
	svc services.TrackService
}

func NewTracksHandler(svc services.TrackService) *TracksHandler {
	return &TracksHandler{svc: svc}
}

// GET /api/tracks
func (h *TracksHandler) List(c *gin.Context) {
	set, err := h.svc.Load(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadGateway, "tracks_load_failed", fmt.Errorf("Nao foi possivel carregar as trilhas."))
		return
	}
	RespondOK(c, gin.H{"tracks": set.Tracks})
}

// GET /api/tracks/:slug
func (h *TracksHandler) GetBySlug(c *gin.Context) {
	set, err := h.svc.Load(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadGateway, "tracks_load_failed", fmt.Errorf("Nao foi possivel carregar as trilhas."))
		return
	}
	track, ok := set.BySlug(c.Param("slug"))
	if !ok {
		RespondError(c, http.StatusNotFound, "track_not_found", fmt.Errorf("track not found"))
		return
	}
	RespondOK(c, gin.H{"track": track})
}

// GET /api/tracks/resources
func (h *TracksHandler) Resources(c *gin.Context) {
	set, err := h.svc.Load(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadGateway, "tracks_load_failed", fmt.Errorf("Nao foi possivel carregar as trilhas."))
		return
	}
	RespondOK(c, gin.H{"resources": set.Resources()})
}
