package schedule

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wesleyorama2/surge/internal/shape"
)

// Property names understood by the load generator.
const (
	PropLoadProfile     = "load_profile"
	PropThreadsSchedule = "threads_schedule"
)

// IdleSchedule is a thread schedule that starts no threads.
const IdleSchedule = "spawn(0,0s,0s,0s,0s)"

// threadsPerRequestSlot multiplies the estimated thread count.
const threadsPerRequestSlot = 50

// ErrNoSegments is returned when there is nothing to schedule.
var ErrNoSegments = errors.New("no segments to schedule")

// Plan is a rendered schedule.
type Plan struct {
	// LoadProfile is the throughput shape, empty in concurrency mode
	LoadProfile string `json:"loadProfile,omitempty" yaml:"loadProfile,omitempty"`

	// ThreadsSchedule is the thread group schedule
	ThreadsSchedule string `json:"threadsSchedule" yaml:"threadsSchedule"`

	// Duration is the scheduled run time in seconds
	Duration int `json:"duration" yaml:"duration"`

	// Threads is the size of the thread pool in qps mode, or the sum of
	// all thread groups in concurrency mode
	Threads int `json:"threads" yaml:"threads"`
}

// Property is a single load-generator property.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Flag renders the property as a command-line definition.
func (p Property) Flag() string {
	return "-J" + p.Name + "=" + p.Value
}

// Properties returns the plan's properties in a stable order.
func (p Plan) Properties() []Property {
	props := []Property{{Name: PropThreadsSchedule, Value: p.ThreadsSchedule}}
	if p.LoadProfile != "" {
		props = append(props, Property{Name: PropLoadProfile, Value: p.LoadProfile})
	}
	return props
}

// LoadProfile renders QPS segments as line(start,end,Ns) entries. A trailing
// line(last,0,1s) drops the rate to zero when the last rate is positive.
//
// Rates at or below zero are raised to 1. The thread pool is sized for the
// peak rate at maxLatency.
func LoadProfile(segs []shape.QPSSegment, maxLatency time.Duration) (Plan, error) {
	if len(segs) == 0 {
		return Plan{}, ErrNoSegments
	}

	var (
		lines    = make([]string, 0, len(segs)+1)
		duration int
		maxQPS   float64
		lastQPS  float64
	)
	for i, seg := range segs {
		seg.StartQPS = clampRate(seg.StartQPS)
		seg.EndQPS = clampRate(seg.EndQPS)
		if err := seg.Validate(); err != nil {
			var segErr *shape.SegmentError
			if errors.As(err, &segErr) {
				cp := *segErr
				cp.Index = i
				return Plan{}, &cp
			}
			return Plan{}, err
		}

		maxQPS = math.Max(maxQPS, math.Max(seg.StartQPS, seg.EndQPS))
		lastQPS = seg.EndQPS
		duration += seg.Duration
		lines = append(lines, fmt.Sprintf("line(%s,%s,%ds)", rate(seg.StartQPS), rate(seg.EndQPS), seg.Duration))
	}

	if lastQPS > 0 {
		lines = append(lines, fmt.Sprintf("line(%s,0,1s)", rate(lastQPS)))
		duration++
	}

	threads := int(maxQPS*float64(maxLatency.Milliseconds())) / 1000
	if threads < 1 {
		threads = 1
	}
	threads *= threadsPerRequestSlot

	return Plan{
		LoadProfile:     strings.Join(lines, " "),
		ThreadsSchedule: fmt.Sprintf("spawn(%d,0s,0s,%ds,1s)", threads, duration),
		Duration:        duration,
		Threads:         threads,
	}, nil
}

// ThreadsSchedule renders thread groups as spawn(threads,Ds,Rs,Ds,Ss)
// entries. Every group must start at least one thread. The scheduled
// duration is the sum of the ramp-up, hold and shutdown phases.
func ThreadsSchedule(segs []shape.ConcurrencySegment) (Plan, error) {
	if len(segs) == 0 {
		return Plan{ThreadsSchedule: IdleSchedule}, nil
	}

	var (
		spawns   = make([]string, 0, len(segs))
		duration int
		threads  int
	)
	for i, seg := range segs {
		if err := seg.Validate(); err != nil {
			var segErr *shape.SegmentError
			if errors.As(err, &segErr) {
				cp := *segErr
				cp.Index = i
				return Plan{}, &cp
			}
			return Plan{}, err
		}
		if seg.ThreadCount <= 0 {
			return Plan{}, &shape.SegmentError{Index: i, Field: "threadCount", Message: "must be greater than 0"}
		}

		duration += seg.RampupTime + seg.Duration + seg.ShutdownTime
		threads += seg.ThreadCount
		spawns = append(spawns, fmt.Sprintf("spawn(%d,%ds,%ds,%ds,%ds)",
			seg.ThreadCount, seg.InitialDelay, seg.RampupTime, seg.Duration, seg.ShutdownTime))
	}

	if duration <= 0 {
		return Plan{}, &shape.SegmentError{Index: len(segs) - 1, Field: "duration", Message: "schedule has no running time"}
	}

	return Plan{
		ThreadsSchedule: strings.Join(spawns, " "),
		Duration:        duration,
		Threads:         threads,
	}, nil
}

// Build renders a tagged segment list. Holes are skipped in qps mode.
func Build(mode shape.Mode, segs []shape.Segment, maxLatency time.Duration) (Plan, error) {
	switch mode {
	case shape.ModeQPS:
		qps := make([]shape.QPSSegment, 0, len(segs))
		for i, seg := range segs {
			switch s := seg.(type) {
			case nil:
			case shape.QPSSegment:
				qps = append(qps, s)
			case *shape.QPSSegment:
				if s != nil {
					qps = append(qps, *s)
				}
			case shape.ConcurrencySegment, *shape.ConcurrencySegment:
				return Plan{}, &shape.MismatchError{Index: i, Want: mode, Got: shape.ModeConcurrency}
			default:
				return Plan{}, &shape.MismatchError{Index: i, Want: mode, Got: s.Mode()}
			}
		}
		return LoadProfile(qps, maxLatency)

	case shape.ModeConcurrency:
		conc := make([]shape.ConcurrencySegment, 0, len(segs))
		for i, seg := range segs {
			switch s := seg.(type) {
			case shape.ConcurrencySegment:
				conc = append(conc, s)
			case *shape.ConcurrencySegment:
				if s == nil {
					return Plan{}, &shape.MismatchError{Index: i, Want: mode}
				}
				conc = append(conc, *s)
			case nil:
				return Plan{}, &shape.MismatchError{Index: i, Want: mode}
			case shape.QPSSegment, *shape.QPSSegment:
				return Plan{}, &shape.MismatchError{Index: i, Want: mode, Got: shape.ModeQPS}
			default:
				return Plan{}, &shape.MismatchError{Index: i, Want: mode, Got: s.Mode()}
			}
		}
		return ThreadsSchedule(conc)

	default:
		return Plan{}, fmt.Errorf("%w: unknown mode %q", shape.ErrMalformedList, mode)
	}
}

func clampRate(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

func rate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
