// Package sessions keeps the host's active review sessions between HTTP
// requests. Every entry carries an idle deadline and a background sweeper
// drops expired ones, so an abandoned session cannot accumulate forever.
package sessions

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mixread/srs-api/internal/review"
)

// DefaultSweepInterval is how often the background sweeper scans for
// expired sessions.
const DefaultSweepInterval = time.Minute

// Entry is one registered session and its owner.
type Entry struct {
	Session *review.Session
	UserID  uuid.UUID
}

type registeredEntry struct {
	// mu serializes callers driving this entry's session, which is not
	// itself safe for concurrent use.
	mu       sync.Mutex
	entry    Entry
	deadline time.Time
}

// Registry is a TTL-bounded store of active review sessions. All methods
// are safe for concurrent use; driving an individual session is still the
// caller's single-threaded responsibility.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registeredEntry

	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	stopOnce sync.Once
	done     chan struct{}
}

// NewRegistry creates a registry whose entries expire after ttl of
// inactivity, and starts its background sweeper.
func NewRegistry(ttl time.Duration, sweepInterval time.Duration, logger *slog.Logger) *Registry {
	if ttl <= 0 {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("session ttl must be positive")
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		entries: make(map[string]*registeredEntry),
		ttl:     ttl,
		logger:  logger.With(slog.String("component", "session_registry")),
		now:     time.Now,
		done:    make(chan struct{}),
	}

	go r.sweep(sweepInterval)

	return r
}

// Put registers a session for the given user, assigns it a fresh session ID,
// and returns that ID.
func (r *Registry) Put(userID uuid.UUID, session *review.Session) string {
	id := uuid.New().String()
	session.SetSessionID(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[id] = &registeredEntry{
		entry:    Entry{Session: session, UserID: userID},
		deadline: r.now().Add(r.ttl),
	}

	return id
}

// Get returns the entry for the given session ID. Each successful lookup
// pushes the idle deadline forward; a session being actively driven never
// expires mid-review. Get takes no per-entry lock; callers that go on to
// drive the session must use WithSession instead.
func (r *Registry) Get(sessionID string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	registered, ok := r.entries[sessionID]
	if !ok {
		return Entry{}, false
	}

	if r.now().After(registered.deadline) {
		delete(r.entries, sessionID)
		return Entry{}, false
	}

	registered.deadline = r.now().Add(r.ttl)
	return registered.entry, true
}

// WithSession runs fn with the entry for the given session ID while holding
// that entry's lock, so concurrent callers driving the same session are
// serialized. Hosts must use this, not Get, for anything that reads or
// advances the session. Like Get, a successful lookup refreshes the idle
// deadline. Returns false without calling fn when the session is unknown or
// expired.
//
// fn must not call back into WithSession for the same session ID.
func (r *Registry) WithSession(sessionID string, fn func(Entry)) bool {
	r.mu.Lock()
	registered, ok := r.entries[sessionID]
	if !ok {
		r.mu.Unlock()
		return false
	}
	if r.now().After(registered.deadline) {
		delete(r.entries, sessionID)
		r.mu.Unlock()
		return false
	}
	registered.deadline = r.now().Add(r.ttl)
	r.mu.Unlock()

	registered.mu.Lock()
	defer registered.mu.Unlock()
	fn(registered.entry)
	return true
}

// Remove drops a session eagerly, typically when it completes or the
// learner ends it early.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

// Len returns the number of registered sessions, expired or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Stop terminates the background sweeper. Safe to call more than once.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

func (r *Registry) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			if removed := r.removeExpired(); removed > 0 {
				r.logger.Debug("swept expired review sessions",
					slog.Int("removed", removed))
			}
		}
	}
}

func (r *Registry) removeExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, registered := range r.entries {
		if now.After(registered.deadline) {
			delete(r.entries, id)
			removed++
		}
	}

	return removed
}
