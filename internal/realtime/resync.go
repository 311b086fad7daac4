package realtime

import (
	"github.com/google/uuid"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/session"
)

// ResyncTrigger reacts to progress-change messages from the bus: the
// affected user's session store gets a silent refresh, and connected SSE
// clients on that user's channel get the message pushed through. It is
// wired as the bus forwarder callback, so it stops with the forwarder's
// context and cannot outlive the app.
type ResyncTrigger struct {
	log      *logger.Logger
	registry *session.Registry
	hub      *Hub
}

func NewResyncTrigger(log *logger.Logger, registry *session.Registry, hub *Hub) *ResyncTrigger {
	return &ResyncTrigger{
		log:      log.With("component", "ResyncTrigger"),
		registry: registry,
		hub:      hub,
	}
}

func (t *ResyncTrigger) Handle(msg Message) {
	if msg.Event != EventProgressChanged || msg.UserID == uuid.Nil {
		return
	}

	// Only sessions that already exist get refreshed; a push for a user
	// with no live session has nothing to reconcile.
	if store, ok := t.registry.Peek(msg.UserID); ok {
		store.RequestRefresh(true)
	}

	if t.hub != nil {
		t.hub.Broadcast(msg)
	}
}
