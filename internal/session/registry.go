package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vestiba/vestiba-backend/internal/logger"
)

// Registry hands out one Store per user id, created on demand. Dropping a
// store on logout is what re-scopes progress state when the signed-in
// identity changes; an anonymous store (Nil user id) serves the catalog
// without progress.
type Registry struct {
	log    *logger.Logger
	cfg    Config
	clock  Clock
	src    Source
	notify Notifier

	mu     sync.Mutex
	stores map[uuid.UUID]*Store
}

func NewRegistry(log *logger.Logger, cfg Config, clock Clock, src Source, notify Notifier) *Registry {
	return &Registry{
		log:    log,
		cfg:    cfg,
		clock:  clock,
		src:    src,
		notify: notify,
		stores: make(map[uuid.UUID]*Store),
	}
}

func (r *Registry) ForUser(userID uuid.UUID) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[userID]; ok {
		return store
	}
	store := NewStore(r.log, r.cfg, r.clock, r.src, r.notify, userID)
	r.stores[userID] = store
	return store
}

// Peek returns the store for a user only if one already exists. The resync
// trigger uses it so a push for a user with no live session does not spin
// up state nobody is reading.
func (r *Registry) Peek(userID uuid.UUID) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[userID]
	return store, ok
}

func (r *Registry) Drop(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, userID)
}
