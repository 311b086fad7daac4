package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/types"
)

// Source is the data-access boundary the store reads and writes through.
// It owns no business logic.
type Source interface {
	ListCatalog(ctx context.Context) ([]*types.Lesson, error)
	ListProgress(ctx context.Context, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.LessonProgress, error)
	UpsertProgress(ctx context.Context, row *types.LessonProgress) (*types.LessonProgress, error)
}

// Notifier receives progress-change signals so other subscribers (other
// devices of the same user) can resync.
type Notifier interface {
	ProgressChanged(userID uuid.UUID)
}

// Config tunes the store's timing policies. Zero or negative delays run
// the follow-up synchronously, which tests rely on.
type Config struct {
	// GuardWindow is how long a cleared completion suppresses stale rows
	// still reported by the backend.
	GuardWindow time.Duration
	// RefreshDelay postpones the silent reconcile after clearing a
	// completion, giving the upsert time to propagate.
	RefreshDelay time.Duration
	// RepeatNotifyDelay spaces the second resync emit after clearing a
	// completion.
	RepeatNotifyDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		GuardWindow:       10 * time.Second,
		RefreshDelay:      300 * time.Millisecond,
		RepeatNotifyDelay: 400 * time.Millisecond,
	}
}

// LessonWithMeta is a catalog lesson joined in memory with the user's
// progress row, when one exists and is not masked by a deletion guard.
type LessonWithMeta struct {
	types.Lesson
	Progress *types.LessonProgress `json:"progress,omitempty"`
}

// Snapshot is the renderable state of a store at one point in time.
type Snapshot struct {
	Loading  bool             `json:"loading"`
	Error    string           `json:"error,omitempty"`
	Lessons  []LessonWithMeta `json:"lessons"`
	Toggling []uuid.UUID      `json:"toggling,omitempty"`
}

// Store holds one user's merged lesson/progress view. Loads are ordered by
// a request generation counter so a stale response can never overwrite
// fresher state, and cleared completions are masked by a short-lived
// per-lesson deletion guard while the backend catches up.
type Store struct {
	log    *logger.Logger
	cfg    Config
	clock  Clock
	src    Source
	notify Notifier
	userID uuid.UUID

	mu         sync.Mutex
	gen        uint64
	loading    bool
	loadedOnce bool
	err        string
	lessons    []LessonWithMeta
	guards     map[uuid.UUID]time.Time
	toggling   map[uuid.UUID]bool

	refreshInflight bool
	refreshPending  bool
	pendingSilent   bool
}

func NewStore(log *logger.Logger, cfg Config, clock Clock, src Source, notify Notifier, userID uuid.UUID) *Store {
	if clock == nil {
		clock = SystemClock()
	}
	if cfg.GuardWindow <= 0 {
		cfg.GuardWindow = DefaultConfig().GuardWindow
	}
	return &Store{
		log:      log.With("component", "SessionStore"),
		cfg:      cfg,
		clock:    clock,
		src:      src,
		notify:   notify,
		userID:   userID,
		loading:  true,
		guards:   make(map[uuid.UUID]time.Time),
		toggling: make(map[uuid.UUID]bool),
	}
}

func (s *Store) UserID() uuid.UUID { return s.userID }

// Refresh reloads the catalog and the user's progress and replaces the
// merged view wholesale. With silent=true the loading flag is left alone so
// background reconciles do not flash a spinner. Failures never propagate to
// the caller; they land on the snapshot's Error field and the previous
// lessons are kept.
func (s *Store) Refresh(ctx context.Context, silent bool) {
	s.mu.Lock()
	s.gen++
	requestID := s.gen
	if !silent {
		s.loading = true
	}
	s.err = ""
	s.mu.Unlock()

	rows, err := s.src.ListCatalog(ctx)
	if err != nil {
		s.failRefresh(requestID, "Nao foi possivel carregar as aulas.", err)
		return
	}

	var progressRows []*types.LessonProgress
	if s.userID != uuid.Nil && len(rows) > 0 {
		lessonIDs := make([]uuid.UUID, 0, len(rows))
		for _, row := range rows {
			lessonIDs = append(lessonIDs, row.ID)
		}
		progressRows, err = s.src.ListProgress(ctx, s.userID, lessonIDs)
		if err != nil {
			s.failRefresh(requestID, "Nao foi possivel carregar as aulas.", err)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if requestID != s.gen {
		// A newer load started while this one was in flight.
		return
	}

	progressByLesson := make(map[uuid.UUID]*types.LessonProgress, len(progressRows))
	for _, row := range progressRows {
		if s.isGuardedLocked(row.LessonID) {
			continue
		}
		progressByLesson[row.LessonID] = row
	}

	merged := make([]LessonWithMeta, 0, len(rows))
	for _, row := range rows {
		merged = append(merged, LessonWithMeta{
			Lesson:   *row,
			Progress: progressByLesson[row.ID],
		})
	}

	s.lessons = merged
	s.loading = false
	s.loadedOnce = true
	s.err = ""
}

// EnsureLoaded performs the initial load once; later calls are no-ops so
// read paths can call it unconditionally.
func (s *Store) EnsureLoaded(ctx context.Context) {
	s.mu.Lock()
	done := s.loadedOnce
	s.mu.Unlock()
	if !done {
		s.Refresh(ctx, false)
	}
}

func (s *Store) failRefresh(requestID uint64, msg string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if requestID != s.gen {
		return
	}
	s.log.Warn("session refresh failed", "user_id", s.userID.String(), "error", err)
	s.loading = false
	s.loadedOnce = true
	s.err = msg
}

// RequestRefresh funnels every background trigger (toggle follow-ups,
// realtime pushes) through one path: at most one refresh in flight plus at
// most one pending follow-up, so a burst of triggers collapses instead of
// fanning out into redundant fetches.
func (s *Store) RequestRefresh(silent bool) {
	s.mu.Lock()
	if s.refreshInflight {
		if s.refreshPending {
			s.pendingSilent = s.pendingSilent && silent
		} else {
			s.refreshPending = true
			s.pendingSilent = silent
		}
		s.mu.Unlock()
		return
	}
	s.refreshInflight = true
	s.mu.Unlock()

	for {
		s.Refresh(context.Background(), silent)

		s.mu.Lock()
		if !s.refreshPending {
			s.refreshInflight = false
			s.mu.Unlock()
			return
		}
		s.refreshPending = false
		silent = s.pendingSilent
		s.mu.Unlock()
	}
}

// ToggleCompletion flips a lesson between done and not done for the
// store's user. Without a signed-in user, or while the same lesson is
// already mid-toggle, it is a no-op.
func (s *Store) ToggleCompletion(ctx context.Context, lessonID uuid.UUID) {
	if s.userID == uuid.Nil {
		return
	}

	s.mu.Lock()
	if s.toggling[lessonID] {
		s.mu.Unlock()
		return
	}
	s.toggling[lessonID] = true
	var current *types.LessonProgress
	for i := range s.lessons {
		if s.lessons[i].ID == lessonID {
			current = s.lessons[i].Progress
			break
		}
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.toggling, lessonID)
		s.mu.Unlock()
	}()

	if current != nil && current.Status == types.ProgressStatusDone {
		s.clearCompletion(ctx, lessonID, current)
	} else {
		s.markCompleted(ctx, lessonID)
	}
}

// clearCompletion un-marks a done lesson. The backend row is not deleted:
// it is upserted back to todo/0, and a deletion guard masks any stale done
// row a lagging read might still return inside the guard window.
func (s *Store) clearCompletion(ctx context.Context, lessonID uuid.UUID, current *types.LessonProgress) {
	row := &types.LessonProgress{
		ID:              current.ID,
		LessonID:        lessonID,
		UserID:          s.userID,
		PercentComplete: 0,
		Status:          types.ProgressStatusTodo,
		CompletedAt:     nil,
	}
	if _, err := s.src.UpsertProgress(ctx, row); err != nil {
		s.log.Error("clear completion failed", "user_id", s.userID.String(), "lesson_id", lessonID, "error", err)
		s.Refresh(ctx, false)
		return
	}

	s.mu.Lock()
	s.guards[lessonID] = s.clock.Now()
	for i := range s.lessons {
		if s.lessons[i].ID == lessonID {
			s.lessons[i].Progress = nil
		}
	}
	s.mu.Unlock()

	s.notifyChanged()
	s.after(s.cfg.RepeatNotifyDelay, s.notifyChanged)
	s.after(s.cfg.RefreshDelay, func() { s.RequestRefresh(true) })
}

func (s *Store) markCompleted(ctx context.Context, lessonID uuid.UUID) {
	now := s.clock.Now()
	row := &types.LessonProgress{
		LessonID:        lessonID,
		UserID:          s.userID,
		PercentComplete: 100,
		Status:          types.ProgressStatusDone,
		CompletedAt:     &now,
	}
	stored, err := s.src.UpsertProgress(ctx, row)
	if err != nil {
		s.log.Error("mark completed failed", "user_id", s.userID.String(), "lesson_id", lessonID, "error", err)
		s.Refresh(ctx, false)
		return
	}

	s.mu.Lock()
	delete(s.guards, lessonID)
	for i := range s.lessons {
		if s.lessons[i].ID == lessonID {
			s.lessons[i].Progress = stored
		}
	}
	s.mu.Unlock()

	// Reconcile aggregate counts right away; the optimistic row above
	// already made the lesson show as done.
	s.RequestRefresh(true)
	s.notifyChanged()
}

func (s *Store) IsToggling(lessonID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggling[lessonID]
}

// isGuardedLocked reports whether a lesson is inside its deletion-guard
// window. Expired entries are dropped on the way out. Caller holds s.mu.
func (s *Store) isGuardedLocked(lessonID uuid.UUID) bool {
	ts, ok := s.guards[lessonID]
	if !ok {
		return false
	}
	if s.clock.Now().Sub(ts) > s.cfg.GuardWindow {
		delete(s.guards, lessonID)
		return false
	}
	return true
}

func (s *Store) notifyChanged() {
	if s.notify != nil {
		s.notify.ProgressChanged(s.userID)
	}
}

func (s *Store) after(d time.Duration, fn func()) {
	if d <= 0 {
		fn()
		return
	}
	time.AfterFunc(d, fn)
}

// Snapshot returns a copy of the current state. Progress rows are copied
// so callers cannot mutate the store through the returned slice.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lessons := make([]LessonWithMeta, len(s.lessons))
	for i, entry := range s.lessons {
		lessons[i] = entry
		if entry.Progress != nil {
			progress := *entry.Progress
			lessons[i].Progress = &progress
		}
	}

	var toggling []uuid.UUID
	for id := range s.toggling {
		toggling = append(toggling, id)
	}

	return Snapshot{
		Loading:  s.loading,
		Error:    s.err,
		Lessons:  lessons,
		Toggling: toggling,
	}
}
