// Package config loads and validates load-profile documents.
package config

import (
	"fmt"
	"time"

	"github.com/wesleyorama2/surge/internal/shape"
)

// ProfileConfig is the root of a load-profile document.
//
// Example YAML:
//
//	name: "checkout ramp"
//	mode: concurrency
//	settings:
//	  timeUnit: 1s
//	segments:
//	  - name: warmup
//	    threadCount: 10
//	    rampupTime: 5
//	    duration: 30
//	    shutdownTime: 5
type ProfileConfig struct {
	// Name of the profile (for reporting)
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Description of the profile (optional)
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Mode is the traffic model: "qps" or "concurrency"
	Mode shape.Mode `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Settings tune compilation and scheduling
	Settings Settings `json:"settings,omitempty" yaml:"settings,omitempty"`

	// Ramps is the ordered segment list. A null entry is a hole.
	Ramps []*SegmentConfig `json:"segments" yaml:"segments"`
}

// Settings holds profile-wide settings.
type Settings struct {
	// TimeUnit is the wall-clock length of one sample
	TimeUnit Duration `json:"timeUnit,omitempty" yaml:"timeUnit,omitempty"`

	// MaxLatency is the expected worst response time, used to size thread pools
	MaxLatency Duration `json:"maxLatency,omitempty" yaml:"maxLatency,omitempty"`

	// MaxSamples caps the compiled timeline length
	MaxSamples int `json:"maxSamples,omitempty" yaml:"maxSamples,omitempty"`
}

// SegmentConfig is one entry of the segment list. Fields are pointers so the
// segment kind can be inferred from which ones are present.
type SegmentConfig struct {
	// Name is an optional label (for reporting)
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// QPS fields
	StartQPS *float64 `json:"startQPS,omitempty" yaml:"startQPS,omitempty"`
	EndQPS   *float64 `json:"endQPS,omitempty" yaml:"endQPS,omitempty"`

	// Concurrency fields
	ThreadCount  *int `json:"threadCount,omitempty" yaml:"threadCount,omitempty"`
	InitialDelay *int `json:"initialDelay,omitempty" yaml:"initialDelay,omitempty"`
	RampupTime   *int `json:"rampupTime,omitempty" yaml:"rampupTime,omitempty"`
	ShutdownTime *int `json:"shutdownTime,omitempty" yaml:"shutdownTime,omitempty"`

	// Duration is shared by both kinds, in time units
	Duration *int `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Kind infers the traffic model from the fields that are set. It returns ""
// when only shared fields are set, and an error when fields of both models
// are present.
func (s *SegmentConfig) Kind() (shape.Mode, error) {
	qps := s.StartQPS != nil || s.EndQPS != nil
	conc := s.ThreadCount != nil || s.InitialDelay != nil || s.RampupTime != nil || s.ShutdownTime != nil

	switch {
	case qps && conc:
		return "", fmt.Errorf("mixes qps and concurrency fields")
	case qps:
		return shape.ModeQPS, nil
	case conc:
		return shape.ModeConcurrency, nil
	default:
		return "", nil
	}
}

// QPS returns the segment as a QPS ramp. Unset fields are zero.
func (s *SegmentConfig) QPS() shape.QPSSegment {
	return shape.QPSSegment{
		StartQPS: floatOr(s.StartQPS),
		EndQPS:   floatOr(s.EndQPS),
		Duration: intOr(s.Duration),
	}
}

// Concurrency returns the segment as a thread group. Unset fields are zero.
func (s *SegmentConfig) Concurrency() shape.ConcurrencySegment {
	return shape.ConcurrencySegment{
		ThreadCount:  intOr(s.ThreadCount),
		InitialDelay: intOr(s.InitialDelay),
		RampupTime:   intOr(s.RampupTime),
		Duration:     intOr(s.Duration),
		ShutdownTime: intOr(s.ShutdownTime),
	}
}

func floatOr(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func intOr(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Duration is a time.Duration that can be unmarshaled from JSON/YAML.
// Accepts Go duration strings ("250ms") and integer seconds (30 or "30").
type Duration time.Duration

// GetDuration returns the duration or a default if zero.
func (d Duration) GetDuration(defaultValue time.Duration) time.Duration {
	if d == 0 {
		return defaultValue
	}
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "null" {
		s = ""
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
