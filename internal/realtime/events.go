package realtime

import "github.com/google/uuid"

type Event string

const (
	EventProgressChanged Event = "LessonProgressChanged"
)

// Message is the unit carried over the resync bus and fanned out to SSE
// subscribers. Channel scopes a message to one user's progress stream.
type Message struct {
	Channel string    `json:"channel"`
	Event   Event     `json:"event"`
	UserID  uuid.UUID `json:"user_id"`
	Data    any       `json:"data,omitempty"`
}

// ProgressChannel names the per-user stream a client subscribes to for its
// own progress changes.
func ProgressChannel(userID uuid.UUID) string {
	return "lesson-progress-" + userID.String()
}
