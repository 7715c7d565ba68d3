package form

import (
	"github.com/google/uuid"

	"github.com/codebuildervaibhav/segment-scripter/internal/types"
)

// Form holds the video URL and the ordered list of time ranges being edited.
// It always contains at least one range. Form is not safe for concurrent use;
// the owning session serializes access.
type Form struct {
	url    string
	ranges []types.TimeRange
	newID  func() string
}

// New creates a form with a single empty range
func New() *Form {
	return newWithIDs(func() string { return uuid.New().String() })
}

func newWithIDs(newID func() string) *Form {
	f := &Form{newID: newID}
	f.ranges = []types.TimeRange{f.emptyRange()}
	return f
}

func (f *Form) emptyRange() types.TimeRange {
	return types.TimeRange{ID: f.newID()}
}

// URL returns the current video URL
func (f *Form) URL() string {
	return f.url
}

// SetURL replaces the video URL verbatim
func (f *Form) SetURL(value string) {
	f.url = value
}

// Ranges returns a copy of the current ranges in order
func (f *Form) Ranges() []types.TimeRange {
	out := make([]types.TimeRange, len(f.ranges))
	copy(out, f.ranges)
	return out
}

// Len returns the number of ranges
func (f *Form) Len() int {
	return len(f.ranges)
}

// AddRange appends an empty range with a fresh ID and returns it
func (f *Form) AddRange() types.TimeRange {
	r := f.emptyRange()
	f.ranges = append(f.ranges, r)
	return r
}

// RemoveRange deletes the range with the given ID. The last remaining range
// is never removed; that call, like an unknown ID, is a silent no-op.
func (f *Form) RemoveRange(id string) bool {
	if len(f.ranges) <= 1 {
		return false
	}
	for i, r := range f.ranges {
		if r.ID != id {
			continue
		}
		next := make([]types.TimeRange, 0, len(f.ranges)-1)
		next = append(next, f.ranges[:i]...)
		next = append(next, f.ranges[i+1:]...)
		f.ranges = next
		return true
	}
	return false
}

// UpdateRange replaces the start or end value of the range with the given ID.
// Unknown IDs and unknown field names leave the form untouched.
func (f *Form) UpdateRange(id, field, value string) bool {
	if field != types.FieldStart && field != types.FieldEnd {
		return false
	}
	for i := range f.ranges {
		if f.ranges[i].ID != id {
			continue
		}
		if field == types.FieldStart {
			f.ranges[i].Start = value
		} else {
			f.ranges[i].End = value
		}
		return true
	}
	return false
}

// Reset replaces every range with the given specs, assigning fresh IDs.
// An empty list leaves a single empty range.
func (f *Form) Reset(specs []types.RangeSpec) {
	if len(specs) == 0 {
		f.ranges = []types.TimeRange{f.emptyRange()}
		return
	}
	next := make([]types.TimeRange, 0, len(specs))
	for _, s := range specs {
		next = append(next, types.TimeRange{ID: f.newID(), Start: s.Start, End: s.End})
	}
	f.ranges = next
}

// Request builds the backend payload: the URL plus every range, in order,
// stripped of its ID. Time values are passed through unvalidated.
func (f *Form) Request() types.TranscribeRequest {
	specs := make([]types.RangeSpec, len(f.ranges))
	for i, r := range f.ranges {
		specs[i] = types.RangeSpec{Start: r.Start, End: r.End}
	}
	return types.TranscribeRequest{URL: f.url, Ranges: specs}
}
