package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/realtime"
	"github.com/vestiba/vestiba-backend/internal/requestdata"
)

type SSEHandler struct {
	log *logger.Logger
	hub *realtime.Hub
}

func NewSSEHandler(log *logger.Logger, hub *realtime.Hub) *SSEHandler {
	return &SSEHandler{log: log.With("component", "SSEHandler"), hub: hub}
}

// GET /api/sse/stream
//
// Each connection is subscribed to the caller's progress channel for its
// lifetime; extra channels can be added with Subscribe below.
func (h *SSEHandler) Stream(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("not authenticated"))
		return
	}

	client := h.hub.NewClient(userID)
	h.hub.AddChannel(client, realtime.ProgressChannel(userID))
	defer h.hub.CloseClient(client)

	h.log.Info("sse stream open", "user_id", userID.String(), "client_id", client.ID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client.Outbound:
			if !ok {
				return false
			}
			c.SSEvent(string(msg.Event), msg)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	h.log.Info("sse stream closed", "user_id", userID.String(), "client_id", client.ID)
}
