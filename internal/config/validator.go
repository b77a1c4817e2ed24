package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wesleyorama2/surge/internal/shape"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Fields returns the field paths that failed, in order.
func (e *ValidationErrors) Fields() []string {
	fields := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		fields[i] = err.Field
	}
	return fields
}

// Validate validates the whole profile.
//
// Returns nil if valid, or a *ValidationErrors containing every problem found.
func (c *ProfileConfig) Validate() error {
	errs := &ValidationErrors{}

	mode := c.Mode
	if mode == "" {
		errs.Add("mode", "mode is required when no segment names its kind")
	} else if _, err := shape.ParseMode(string(mode)); err != nil {
		errs.Add("mode", fmt.Sprintf("unknown mode: %s", mode))
		mode = ""
	}

	validateSettings(&c.Settings, errs)

	for i, seg := range c.Ramps {
		validateSegment(fmt.Sprintf("segments[%d]", i), seg, mode, errs)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateSettings(s *Settings, errs *ValidationErrors) {
	if s.TimeUnit < 0 {
		errs.Add("settings.timeUnit", "timeUnit cannot be negative")
	}
	if s.MaxLatency < 0 {
		errs.Add("settings.maxLatency", "maxLatency cannot be negative")
	}
	if s.MaxSamples < 0 {
		errs.Add("settings.maxSamples", "maxSamples cannot be negative")
	} else if s.MaxSamples > shape.MaxSamplesLimit {
		errs.Add("settings.maxSamples", fmt.Sprintf("maxSamples cannot exceed %d", shape.MaxSamplesLimit))
	}
}

// validateSegment checks one entry against the profile mode. mode is "" when
// the profile mode is itself invalid; kind checks are skipped then.
func validateSegment(prefix string, sc *SegmentConfig, mode shape.Mode, errs *ValidationErrors) {
	if sc == nil {
		if mode == shape.ModeConcurrency {
			errs.Add(prefix, "empty segment in a concurrency profile")
		}
		return
	}

	kind, err := sc.Kind()
	if err != nil {
		errs.Add(prefix, err.Error())
		return
	}
	if kind == "" {
		kind = mode
	}
	if mode != "" && kind != mode {
		errs.Add(prefix, fmt.Sprintf("%s segment in a %s profile", kind, mode))
		return
	}

	var seg shape.Segment
	switch kind {
	case shape.ModeQPS:
		seg = sc.QPS()
	case shape.ModeConcurrency:
		seg = sc.Concurrency()
	default:
		return
	}

	if err := seg.Validate(); err != nil {
		var segErr *shape.SegmentError
		if errors.As(err, &segErr) {
			errs.Add(prefix+"."+segErr.Field, segErr.Message)
			return
		}
		errs.Add(prefix, err.Error())
	}
}
