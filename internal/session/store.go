package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codebuildervaibhav/segment-scripter/internal/submission"
)

// Store keeps sessions in memory until they are swept for inactivity
type Store struct {
	pipeline *submission.Pipeline
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store
func NewStore(pipeline *submission.Pipeline) *Store {
	return &Store{
		pipeline: pipeline,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session with the given ID, or nil
func (st *Store) Get(id string) *Session {
	if id == "" {
		return nil
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Create registers a new session with a fresh ID
func (st *Store) Create() *Session {
	s := newSession(uuid.New().String(), st.pipeline, st.now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

// GetOrCreate returns the session for id, creating one if it is unknown.
// Either way the session is marked as seen.
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	if s := st.Get(id); s != nil {
		s.touch(st.now())
		return s, false
	}
	return st.Create(), true
}

// Sweep removes sessions idle for longer than maxIdle and returns how many
// were removed.
func (st *Store) Sweep(maxIdle time.Duration) int {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.expired(now, maxIdle) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
