package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vestiba/vestiba-backend/internal/logger"
)

// Publisher is the slice of the resync bus the notifier needs. Declared
// here so this package does not depend on the bus implementation.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

const publishTimeout = 5 * time.Second

// BusNotifier implements the session store's Notifier by publishing
// progress-change messages onto the resync bus. Publish failures are
// logged and swallowed: the toggle itself already succeeded, and the next
// explicit refresh reconciles any listener that missed the signal.
type BusNotifier struct {
	log *logger.Logger
	pub Publisher
}

func NewBusNotifier(log *logger.Logger, pub Publisher) *BusNotifier {
	return &BusNotifier{log: log.With("component", "BusNotifier"), pub: pub}
}

func (n *BusNotifier) ProgressChanged(userID uuid.UUID) {
	if n.pub == nil || userID == uuid.Nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	msg := Message{
		Channel: ProgressChannel(userID),
		Event:   EventProgressChanged,
		UserID:  userID,
	}
	if err := n.pub.Publish(ctx, msg); err != nil {
		n.log.Warn("publish progress change failed", "user_id", userID.String(), "error", err)
	}
}
