package submission

import "github.com/codebuildervaibhav/segment-scripter/internal/types"

// State is the outcome of the latest submission as shown to the user.
// Idle, submitting, failed and succeeded are mutually exclusive.
type State struct {
	Status  string                    `json:"status"`
	Loading bool                      `json:"loading"`
	Error   string                    `json:"error,omitempty"`
	Results []types.TranscriptSegment `json:"results"`
}

// NewState returns the idle state
func NewState() State {
	return State{
		Status:  types.StatusIdle,
		Results: []types.TranscriptSegment{},
	}
}

// Begin enters the submitting state. Any previous error or results are
// discarded before the request is issued.
func (s *State) Begin() {
	s.Status = types.StatusSubmitting
	s.Loading = true
	s.Error = ""
	s.Results = []types.TranscriptSegment{}
}

// Succeed stores the backend results in response order
func (s *State) Succeed(results []types.TranscriptSegment) {
	out := make([]types.TranscriptSegment, len(results))
	copy(out, results)
	s.Status = types.StatusSuccess
	s.Loading = false
	s.Error = ""
	s.Results = out
}

// Fail records a user-visible message and clears the results
func (s *State) Fail(message string) {
	s.Status = types.StatusFailed
	s.Loading = false
	s.Error = message
	s.Results = []types.TranscriptSegment{}
}

// Clone returns a copy that shares no slices with s
func (s State) Clone() State {
	out := s
	out.Results = make([]types.TranscriptSegment, len(s.Results))
	copy(out.Results, s.Results)
	return out
}
