package shape

import (
	"fmt"
	"math"
)

// Mode identifies the traffic model of a segment list.
type Mode string

const (
	// ModeQPS ramps the request rate; segments run back to back.
	ModeQPS Mode = "qps"

	// ModeConcurrency ramps thread groups; segments may overlap.
	ModeConcurrency Mode = "concurrency"
)

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeQPS, ModeConcurrency:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrMalformedList, s)
	}
}

// Segment is one declarative ramp of a traffic profile.
//
// Implementations are QPSSegment and ConcurrencySegment.
type Segment interface {
	// Mode returns the traffic model this segment belongs to.
	Mode() Mode

	// Validate reports whether the segment can produce finite samples.
	Validate() error
}

// QPSSegment ramps the request rate linearly from StartQPS towards EndQPS.
type QPSSegment struct {
	StartQPS float64 `json:"startQPS" yaml:"startQPS"`
	EndQPS   float64 `json:"endQPS" yaml:"endQPS"`

	// Duration is the number of time units (samples) of the ramp.
	Duration int `json:"duration" yaml:"duration"`
}

// Mode returns ModeQPS.
func (s QPSSegment) Mode() Mode {
	return ModeQPS
}

// Validate validates the segment.
func (s QPSSegment) Validate() error {
	if s.Duration <= 0 {
		return &SegmentError{Index: -1, Field: "duration", Message: "must be greater than 0"}
	}
	if err := checkRate("startQPS", s.StartQPS); err != nil {
		return err
	}
	return checkRate("endQPS", s.EndQPS)
}

func checkRate(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &SegmentError{Index: -1, Field: field, Message: "must be a finite number"}
	}
	if v < 0 {
		return &SegmentError{Index: -1, Field: field, Message: "cannot be negative"}
	}
	return nil
}

// ConcurrencySegment is a thread group: after InitialDelay it ramps up to
// ThreadCount over RampupTime, holds for Duration and ramps down over
// ShutdownTime. All values are in time units.
type ConcurrencySegment struct {
	ThreadCount  int `json:"threadCount" yaml:"threadCount"`
	InitialDelay int `json:"initialDelay" yaml:"initialDelay"`
	RampupTime   int `json:"rampupTime" yaml:"rampupTime"`
	Duration     int `json:"duration" yaml:"duration"`
	ShutdownTime int `json:"shutdownTime" yaml:"shutdownTime"`
}

// Mode returns ModeConcurrency.
func (s ConcurrencySegment) Mode() Mode {
	return ModeConcurrency
}

// Validate validates the segment. Zero-length phases are allowed.
func (s ConcurrencySegment) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"threadCount", s.ThreadCount},
		{"initialDelay", s.InitialDelay},
		{"rampupTime", s.RampupTime},
		{"duration", s.Duration},
		{"shutdownTime", s.ShutdownTime},
	}
	for _, f := range fields {
		if f.value < 0 {
			return &SegmentError{Index: -1, Field: f.name, Message: "cannot be negative"}
		}
	}
	return nil
}

// Span is the number of load samples the segment produces, including the
// trailing zero.
func (s ConcurrencySegment) Span() int {
	return s.RampupTime + s.Duration + s.ShutdownTime + 1
}

// Ensure both segment kinds implement Segment
var (
	_ Segment = QPSSegment{}
	_ Segment = ConcurrencySegment{}
)
