package submission

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"strings"

	"github.com/codebuildervaibhav/segment-scripter/internal/transcription"
	"github.com/codebuildervaibhav/segment-scripter/internal/types"
)

// User-visible fallback messages
const (
	FailureMessage = "Failed to get transcript. Please try again."
	UnknownMessage = "An unknown error occurred."
)

// ErrUnknown stands in for a fault that carried no usable error value
var ErrUnknown = errors.New("unknown submission fault")

// Transcriber performs the backend round trip
type Transcriber interface {
	Transcribe(ctx context.Context, req types.TranscribeRequest) ([]types.TranscriptSegment, error)
}

// Pipeline runs one submission against the backend. It does not retry and
// does not guard against overlapping calls.
type Pipeline struct {
	transcriber Transcriber
}

// NewPipeline creates a submission pipeline
func NewPipeline(transcriber Transcriber) *Pipeline {
	return &Pipeline{transcriber: transcriber}
}

// Submit sends req and returns the transcript segments or the fault.
// A panic inside the transcriber is reported as an error.
func (p *Pipeline) Submit(ctx context.Context, req types.TranscribeRequest) (segments []types.TranscriptSegment, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC during submission: %v\n%s", r, string(debug.Stack()))
			segments = nil
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = ErrUnknown
		}
	}()

	log.Printf("Submission started (ranges: %d)", len(req.Ranges))

	segments, err = p.transcriber.Transcribe(ctx, req)
	if err != nil {
		log.Printf("Submission failed: %v", err)
		return nil, err
	}
	if segments == nil {
		segments = []types.TranscriptSegment{}
	}

	log.Printf("Submission completed: %d segments", len(segments))
	return segments, nil
}

// Message maps a submission fault to the single message shown to the user:
// the backend's own message if it sent one, the generic failure message for
// other backend faults, the error text for transport faults, and the unknown
// message when nothing usable is left.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var be *transcription.BackendError
	if errors.As(err, &be) {
		if be.Message != "" {
			return be.Message
		}
		return FailureMessage
	}

	if errors.Is(err, ErrUnknown) {
		return UnknownMessage
	}

	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return UnknownMessage
	}
	return msg
}

// Describe formats a state for logs without including transcript text
func Describe(s State) string {
	switch s.Status {
	case types.StatusFailed:
		return fmt.Sprintf("%s (%s)", s.Status, s.Error)
	case types.StatusSuccess:
		return fmt.Sprintf("%s (%d segments)", s.Status, len(s.Results))
	default:
		return s.Status
	}
}
