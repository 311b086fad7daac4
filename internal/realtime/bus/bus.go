package bus

import (
	"context"

	"github.com/vestiba/vestiba-backend/internal/realtime"
)

// Bus carries progress-change messages between app instances. The
// forwarder delivers every published message back to the process, which is
// what lets one instance's toggle trigger a silent resync on another.
type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error
	Close() error
}
