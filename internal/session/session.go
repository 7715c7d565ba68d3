package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/codebuildervaibhav/segment-scripter/internal/form"
	"github.com/codebuildervaibhav/segment-scripter/internal/submission"
	"github.com/codebuildervaibhav/segment-scripter/internal/types"
)

const subscriberBuffer = 8

// Snapshot is a point-in-time copy of a session, safe to render or encode
type Snapshot struct {
	ID      string                    `json:"id"`
	URL     string                    `json:"url"`
	Ranges  []types.TimeRange         `json:"ranges"`
	Status  string                    `json:"status"`
	Loading bool                      `json:"loading"`
	Error   string                    `json:"error,omitempty"`
	Results []types.TranscriptSegment `json:"results"`
}

// CanRemove reports whether a range may be removed
func (s Snapshot) CanRemove() bool {
	return len(s.Ranges) > 1
}

// Session owns one visitor's form and submission state. Every mutation
// publishes a snapshot to the session's subscribers.
type Session struct {
	ID string

	pipeline *submission.Pipeline

	mu       sync.Mutex
	form     *form.Form
	state    submission.State
	subs     map[int]chan Snapshot
	nextID   int
	lastSeen time.Time
}

func newSession(id string, pipeline *submission.Pipeline, now time.Time) *Session {
	return &Session{
		ID:       id,
		pipeline: pipeline,
		form:     form.New(),
		state:    submission.NewState(),
		subs:     make(map[int]chan Snapshot),
		lastSeen: now,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// expired reports whether the session has been untouched for longer than
// maxIdle. Sessions with a request in flight or a live subscriber never expire.
func (s *Session) expired(now time.Time, maxIdle time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Loading || len(s.subs) > 0 {
		return false
	}
	return now.Sub(s.lastSeen) > maxIdle
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	st := s.state.Clone()
	return Snapshot{
		ID:      s.ID,
		URL:     s.form.URL(),
		Ranges:  s.form.Ranges(),
		Status:  st.Status,
		Loading: st.Loading,
		Error:   st.Error,
		Results: st.Results,
	}
}

// mutate applies fn under the session lock and publishes the result
func (s *Session) mutate(fn func()) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	snap := s.snapshotLocked()
	s.publishLocked(snap)
	return snap
}

// SetURL replaces the video URL
func (s *Session) SetURL(value string) Snapshot {
	return s.mutate(func() { s.form.SetURL(value) })
}

// AddRange appends an empty range
func (s *Session) AddRange() Snapshot {
	return s.mutate(func() { s.form.AddRange() })
}

// RemoveRange removes a range unless it is the last one
func (s *Session) RemoveRange(id string) Snapshot {
	return s.mutate(func() { s.form.RemoveRange(id) })
}

// UpdateRange changes the start or end of a range
func (s *Session) UpdateRange(id, field, value string) Snapshot {
	return s.mutate(func() { s.form.UpdateRange(id, field, value) })
}

// Replace overwrites the URL and every range
func (s *Session) Replace(url string, ranges []types.RangeSpec) Snapshot {
	return s.mutate(func() {
		s.form.SetURL(url)
		s.form.Reset(ranges)
	})
}

// Submit clears the previous outcome, sends the current form to the backend
// and records the result. The lock is not held during the round trip, so an
// overlapping submission simply overwrites the state when it finishes.
func (s *Session) Submit(ctx context.Context) Snapshot {
	var req types.TranscribeRequest
	s.mutate(func() {
		s.state.Begin()
		req = s.form.Request()
	})

	segments, err := s.pipeline.Submit(ctx, req)

	return s.mutate(func() {
		if err != nil {
			s.state.Fail(submission.Message(err))
		} else {
			s.state.Succeed(segments)
		}
		log.Printf("Session %s: %s", s.ID, submission.Describe(s.state))
	})
}

// Subscribe registers for snapshots. The returned cancel func must be called
// to release the subscription.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, subscriberBuffer)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publishLocked delivers snap to every subscriber. A slow subscriber loses
// its oldest pending snapshot so the latest one always gets through.
func (s *Session) publishLocked(snap Snapshot) {
	for _, ch := range s.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
