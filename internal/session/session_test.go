package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codebuildervaibhav/segment-scripter/internal/submission"
	"github.com/codebuildervaibhav/segment-scripter/internal/transcription"
	"github.com/codebuildervaibhav/segment-scripter/internal/types"
)

type blockingTranscriber struct {
	started chan types.TranscribeRequest
	release chan struct{}
	result  []types.TranscriptSegment
	err     error
}

func newBlockingTranscriber() *blockingTranscriber {
	return &blockingTranscriber{
		started: make(chan types.TranscribeRequest, 4),
		release: make(chan struct{}),
	}
}

func (b *blockingTranscriber) Transcribe(ctx context.Context, req types.TranscribeRequest) ([]types.TranscriptSegment, error) {
	b.started <- req
	<-b.release
	return b.result, b.err
}

type stubTranscriber struct {
	result []types.TranscriptSegment
	err    error
}

func (s stubTranscriber) Transcribe(ctx context.Context, req types.TranscribeRequest) ([]types.TranscriptSegment, error) {
	return s.result, s.err
}

func newTestSession(tr submission.Transcriber) *Session {
	return NewStore(submission.NewPipeline(tr)).Create()
}

func TestSubmitSuccess(t *testing.T) {
	s := newTestSession(stubTranscriber{result: []types.TranscriptSegment{{Range: "00:00:10 - 00:01:00", Text: "hello world"}}})
	s.SetURL("https://example.com/watch?v=abc")
	snap := s.Snapshot()
	s.UpdateRange(snap.Ranges[0].ID, types.FieldStart, "00:00:10")
	s.UpdateRange(snap.Ranges[0].ID, types.FieldEnd, "00:01:00")

	got := s.Submit(context.Background())
	if got.Loading || got.Error != "" || got.Status != types.StatusSuccess {
		t.Fatalf("unexpected state: %+v", got)
	}
	if len(got.Results) != 1 || got.Results[0] != (types.TranscriptSegment{Range: "00:00:10 - 00:01:00", Text: "hello world"}) {
		t.Fatalf("unexpected results: %+v", got.Results)
	}
}

func TestSubmitBackendFailure(t *testing.T) {
	s := newTestSession(stubTranscriber{err: &transcription.BackendError{StatusCode: 500, Message: "video unavailable"}})
	got := s.Submit(context.Background())
	if got.Loading || got.Error != "video unavailable" || len(got.Results) != 0 || got.Status != types.StatusFailed {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestSubmitTransportFailure(t *testing.T) {
	s := newTestSession(stubTranscriber{err: errors.New("connection refused")})
	got := s.Submit(context.Background())
	if got.Error != "connection refused" {
		t.Fatalf("unexpected error message: %q", got.Error)
	}
}

func TestSubmitClearsPreviousOutcomeImmediately(t *testing.T) {
	bt := newBlockingTranscriber()
	s := newTestSession(bt)

	bt.result = []types.TranscriptSegment{{Range: "A", Text: "x"}}
	done := make(chan Snapshot, 1)
	go func() { done <- s.Submit(context.Background()) }()
	<-bt.started
	bt.release <- struct{}{}
	if first := <-done; len(first.Results) != 1 {
		t.Fatalf("expected first submission results, got %+v", first)
	}

	go func() { done <- s.Submit(context.Background()) }()
	<-bt.started

	mid := s.Snapshot()
	if !mid.Loading || len(mid.Results) != 0 || mid.Error != "" || mid.Status != types.StatusSubmitting {
		t.Fatalf("expected cleared submitting state while in flight, got %+v", mid)
	}

	bt.release <- struct{}{}
	<-done
}

func TestSubmitSendsCurrentForm(t *testing.T) {
	bt := newBlockingTranscriber()
	s := newTestSession(bt)
	s.Replace("https://example.com/v", []types.RangeSpec{{Start: "00:00:01", End: "00:00:02"}, {Start: "00:10:00", End: "00:11:00"}})

	go s.Submit(context.Background())
	req := <-bt.started
	close(bt.release)

	if req.URL != "https://example.com/v" || len(req.Ranges) != 2 || req.Ranges[1].Start != "00:10:00" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestRemoveRangeKeepsOne(t *testing.T) {
	s := newTestSession(stubTranscriber{})
	only := s.Snapshot().Ranges[0].ID
	snap := s.RemoveRange(only)
	if len(snap.Ranges) != 1 || snap.CanRemove() {
		t.Fatalf("expected sole range to remain: %+v", snap.Ranges)
	}

	s.AddRange()
	snap = s.RemoveRange(only)
	if len(snap.Ranges) != 1 || snap.Ranges[0].ID == only {
		t.Fatalf("expected first range removed: %+v", snap.Ranges)
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	s := newTestSession(stubTranscriber{result: []types.TranscriptSegment{{Range: "A", Text: "x"}}})
	ch, cancel := s.Subscribe()
	defer cancel()

	s.SetURL("https://example.com")
	select {
	case snap := <-ch:
		if snap.URL != "https://example.com" {
			t.Fatalf("unexpected snapshot url: %q", snap.URL)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for snapshot")
	}

	s.Submit(context.Background())
	var states []string
	for i := 0; i < 2; i++ {
		select {
		case snap := <-ch:
			states = append(states, snap.Status)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for submission snapshots")
		}
	}
	if states[0] != types.StatusSubmitting || states[1] != types.StatusSuccess {
		t.Fatalf("unexpected state sequence: %v", states)
	}
}

func TestSlowSubscriberKeepsLatest(t *testing.T) {
	s := newTestSession(stubTranscriber{})
	ch, cancel := s.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer*3; i++ {
		s.AddRange()
	}

	var last Snapshot
	for len(ch) > 0 {
		last = <-ch
	}
	if len(last.Ranges) != subscriberBuffer*3+1 {
		t.Fatalf("expected latest snapshot with %d ranges, got %d", subscriberBuffer*3+1, len(last.Ranges))
	}
}

func TestCancelClosesChannel(t *testing.T) {
	s := newTestSession(stubTranscriber{})
	ch, cancel := s.Subscribe()
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	s.AddRange()
}

func TestStore(t *testing.T) {
	st := NewStore(submission.NewPipeline(stubTranscriber{}))
	if st.Get("") != nil || st.Get("missing") != nil {
		t.Fatalf("expected nil for unknown ids")
	}

	a := st.Create()
	if st.Get(a.ID) != a {
		t.Fatalf("expected stored session")
	}

	b, created := st.GetOrCreate(a.ID)
	if created || b != a {
		t.Fatalf("expected existing session")
	}
	c, created := st.GetOrCreate("missing")
	if !created || c.ID == a.ID {
		t.Fatalf("expected new session")
	}
	if st.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", st.Len())
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st := NewStore(submission.NewPipeline(stubTranscriber{}))
	st.now = func() time.Time { return now }

	idle := st.Create()
	watched := st.Create()
	_, cancel := watched.Subscribe()
	defer cancel()

	now = now.Add(30 * time.Minute)
	recent := st.Create()

	now = now.Add(40 * time.Minute)
	if n := st.Sweep(time.Hour); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if st.Get(idle.ID) != nil {
		t.Fatalf("idle session survived sweep")
	}
	if st.Get(watched.ID) == nil || st.Get(recent.ID) == nil {
		t.Fatalf("active or recent session was evicted")
	}
}

func TestGetOrCreateRefreshesLastSeen(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st := NewStore(submission.NewPipeline(stubTranscriber{}))
	st.now = func() time.Time { return now }

	s := st.Create()
	now = now.Add(50 * time.Minute)
	st.GetOrCreate(s.ID)
	now = now.Add(50 * time.Minute)

	if n := st.Sweep(time.Hour); n != 0 || st.Get(s.ID) == nil {
		t.Fatalf("recently seen session was evicted")
	}
}

func TestSweepKeepsInFlightSubmission(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	bt := newBlockingTranscriber()
	st := NewStore(submission.NewPipeline(bt))
	st.now = func() time.Time { return now }

	s := st.Create()
	done := make(chan struct{})
	go func() {
		s.Submit(context.Background())
		close(done)
	}()
	<-bt.started

	now = now.Add(2 * time.Hour)
	if n := st.Sweep(time.Hour); n != 0 {
		t.Fatalf("session with a request in flight was evicted")
	}
	close(bt.release)
	<-done
}

func TestJanitorSweepsPeriodically(t *testing.T) {
	st := NewStore(submission.NewPipeline(stubTranscriber{}))
	st.Create()

	j := NewJanitor(st, 10*time.Millisecond, 0)
	j.Start()
	defer j.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for st.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("janitor did not evict idle session")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
