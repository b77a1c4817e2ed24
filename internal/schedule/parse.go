// Package schedule renders segment lists as Throughput Shaping Timer
// properties for JMeter-style load generators.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/wesleyorama2/surge/internal/shape"
)

// ErrTruncated is returned when a compact profile is not a whole number of groups.
var ErrTruncated = errors.New("profile is incomplete or truncated")

// Group sizes of the compact formats.
const (
	qpsGroup     = 3 // start,end,duration
	threadsGroup = 5 // threads,delay,rampup,duration,shutdown
)

// fields splits a compact profile on any of ,;:_| and whitespace, dropping
// empty tokens.
func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(",;:_|", r) || unicode.IsSpace(r)
	})
}

// ParseQPSProfile parses "start,end,duration" groups, e.g. "0,10,5;10,20,5".
// Rates may be fractional; durations are whole time units.
func ParseQPSProfile(s string) ([]shape.QPSSegment, error) {
	tokens := fields(s)
	if len(tokens)%qpsGroup != 0 {
		return nil, fmt.Errorf("%w: %d values, want groups of %d (start,end,duration)",
			ErrTruncated, len(tokens), qpsGroup)
	}

	segs := make([]shape.QPSSegment, 0, len(tokens)/qpsGroup)
	for i := 0; i < len(tokens); i += qpsGroup {
		start, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid qps at profile[%d] = '%s'", i+1, tokens[i])
		}
		end, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid qps at profile[%d] = '%s'", i+2, tokens[i+1])
		}
		duration, err := strconv.Atoi(tokens[i+2])
		if err != nil {
			return nil, fmt.Errorf("invalid duration at profile[%d] = '%s': must be a number", i+3, tokens[i+2])
		}

		segs = append(segs, shape.QPSSegment{StartQPS: start, EndQPS: end, Duration: duration})
	}
	return segs, nil
}

// ParseThreadsProfile parses "threads,delay,rampup,duration,shutdown" groups,
// e.g. "10,0,5,30,5 5,10,0,20,0".
func ParseThreadsProfile(s string) ([]shape.ConcurrencySegment, error) {
	tokens := fields(s)
	if len(tokens)%threadsGroup != 0 {
		return nil, fmt.Errorf("%w: %d values, want groups of %d (threads,delay,rampup,duration,shutdown)",
			ErrTruncated, len(tokens), threadsGroup)
	}

	values := make([]int, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid value at threads[%d] = '%s'", i+1, tok)
		}
		values[i] = v
	}

	segs := make([]shape.ConcurrencySegment, 0, len(values)/threadsGroup)
	for i := 0; i < len(values); i += threadsGroup {
		segs = append(segs, shape.ConcurrencySegment{
			ThreadCount:  values[i],
			InitialDelay: values[i+1],
			RampupTime:   values[i+2],
			Duration:     values[i+3],
			ShutdownTime: values[i+4],
		})
	}
	return segs, nil
}

// Parse parses a compact profile in the given mode.
func Parse(mode shape.Mode, s string) ([]shape.Segment, error) {
	switch mode {
	case shape.ModeQPS:
		qps, err := ParseQPSProfile(s)
		if err != nil {
			return nil, err
		}
		segs := make([]shape.Segment, len(qps))
		for i, seg := range qps {
			segs[i] = seg
		}
		return segs, nil

	case shape.ModeConcurrency:
		conc, err := ParseThreadsProfile(s)
		if err != nil {
			return nil, err
		}
		segs := make([]shape.Segment, len(conc))
		for i, seg := range conc {
			segs[i] = seg
		}
		return segs, nil

	default:
		return nil, fmt.Errorf("%w: unknown mode %q", shape.ErrMalformedList, mode)
	}
}
