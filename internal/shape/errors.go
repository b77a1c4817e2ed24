package shape

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSegment is returned when a segment cannot produce finite samples.
	ErrInvalidSegment = errors.New("invalid segment")

	// ErrMalformedList is returned when a segment list does not fit the active mode.
	ErrMalformedList = errors.New("malformed segment list")
)

// SegmentError describes a rejected segment field.
type SegmentError struct {
	// Index is the position of the segment in its list, or -1 for a lone segment.
	Index   int
	Field   string
	Message string
}

func (e *SegmentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid segment: field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid segment %d: field '%s': %s", e.Index, e.Field, e.Message)
}

// Unwrap allows errors.Is(err, ErrInvalidSegment).
func (e *SegmentError) Unwrap() error {
	return ErrInvalidSegment
}

// MismatchError reports a segment whose mode differs from the list's mode.
type MismatchError struct {
	Index int
	Want  Mode
	Got   Mode
}

func (e *MismatchError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("malformed segment list: segment %d is empty, want %s", e.Index, e.Want)
	}
	return fmt.Sprintf("malformed segment list: segment %d is %s, want %s", e.Index, e.Got, e.Want)
}

// Unwrap allows errors.Is(err, ErrMalformedList).
func (e *MismatchError) Unwrap() error {
	return ErrMalformedList
}

// withIndex returns a copy of err positioned at index when it is a SegmentError.
func withIndex(err error, index int) error {
	var segErr *SegmentError
	if errors.As(err, &segErr) {
		cp := *segErr
		cp.Index = index
		return &cp
	}
	return err
}
