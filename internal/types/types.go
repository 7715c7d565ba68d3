package types

// Submission status constants
const (
	StatusIdle       = "IDLE"
	StatusSubmitting = "SUBMITTING"
	StatusSuccess    = "SUCCESS"
	StatusFailed     = "FAILED"
)

// Time range field names
const (
	FieldStart = "start"
	FieldEnd   = "end"
)

// Export format constants
const (
	FormatText     = "txt"
	FormatMarkdown = "md"
)

// TimeRange is one editable row of the form. The ID only addresses the row
// while editing and is never sent to the backend.
type TimeRange struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// RangeSpec is a time range as it travels on the wire.
type RangeSpec struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TranscriptSegment is the backend output for one submitted range
type TranscriptSegment struct {
	Range string `json:"range"`
	Text  string `json:"text"`
}

// TranscribeRequest is the body POSTed to the transcription backend
type TranscribeRequest struct {
	URL    string      `json:"url"`
	Ranges []RangeSpec `json:"ranges"`
}

// TranscribeResponse is the body returned by the transcription backend
type TranscribeResponse struct {
	Transcripts []TranscriptSegment `json:"transcripts,omitempty"`
	Error       string              `json:"error,omitempty"`
}
