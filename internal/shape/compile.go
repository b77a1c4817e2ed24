package shape

import "fmt"

// DefaultMaxSamples bounds the length of a compiled timeline (48 days at one
// sample per second).
const DefaultMaxSamples = 1 << 22

// MaxSamplesLimit is the largest MaxSamples honoured; larger values are clamped.
const MaxSamplesLimit = 1 << 28

// Options tunes a compilation.
type Options struct {
	// MaxSamples is the largest timeline, brackets excluded, Compile will
	// allocate. Zero means DefaultMaxSamples; values above MaxSamplesLimit
	// are clamped to it.
	MaxSamples int
}

// DefaultOptions returns the default compile options.
func DefaultOptions() Options {
	return Options{MaxSamples: DefaultMaxSamples}
}

func (o Options) maxSamples() int {
	switch {
	case o.MaxSamples <= 0:
		return DefaultMaxSamples
	case o.MaxSamples > MaxSamplesLimit:
		return MaxSamplesLimit
	default:
		return o.MaxSamples
	}
}

// Compile validates segments against mode and renders them into a timeline.
//
// Segments are processed once, in list order. In QPS mode nil entries are
// holes and are skipped. Any invalid segment or mode mismatch aborts the
// whole compilation; no partial timeline is returned.
func Compile(mode Mode, segments []Segment) (Timeline, error) {
	return CompileWithOptions(mode, segments, DefaultOptions())
}

// CompileWithOptions is Compile with explicit options.
func CompileWithOptions(mode Mode, segments []Segment, opts Options) (Timeline, error) {
	switch mode {
	case ModeQPS:
		qps, err := qpsSegments(segments)
		if err != nil {
			return nil, err
		}
		return compileQPS(qps, opts.maxSamples())

	case ModeConcurrency:
		conc, err := concurrencySegments(segments)
		if err != nil {
			return nil, err
		}
		return compileConcurrency(conc, opts.maxSamples())

	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrMalformedList, mode)
	}
}

func compileQPS(segments []QPSSegment, limit int) (Timeline, error) {
	total := 0
	for i, seg := range segments {
		if err := seg.Validate(); err != nil {
			return nil, withIndex(err, i)
		}
		if seg.Duration > limit-total {
			return nil, tooLong(i, limit)
		}
		total += seg.Duration
	}

	arrays := make([][]float64, len(segments))
	for i, seg := range segments {
		samples, err := GenerateQPS(seg)
		if err != nil {
			return nil, withIndex(err, i)
		}
		arrays[i] = samples
	}
	return MergeQPS(arrays), nil
}

func compileConcurrency(segments []ConcurrencySegment, limit int) (Timeline, error) {
	offsets := make([]int, len(segments))
	sizes := make([]int, len(segments))
	for i, seg := range segments {
		if err := seg.Validate(); err != nil {
			return nil, withIndex(err, i)
		}
		if seg.RampupTime > limit || seg.Duration > limit || seg.ShutdownTime > limit ||
			seg.Duration > limit-seg.RampupTime ||
			seg.ShutdownTime > limit-seg.RampupTime-seg.Duration ||
			seg.Span() > limit {
			return nil, tooLong(i, limit)
		}
		offsets[i] = seg.InitialDelay
		sizes[i] = seg.Span()
	}
	if foldLen(offsets, sizes, limit) < 0 {
		return nil, tooLong(len(segments)-1, limit)
	}

	steps := make([]Step, len(segments))
	for i, seg := range segments {
		step, err := GenerateConcurrency(seg)
		if err != nil {
			return nil, withIndex(err, i)
		}
		steps[i] = step
	}
	return MergeConcurrency(steps), nil
}

func tooLong(index, limit int) error {
	return &SegmentError{
		Index:   index,
		Field:   "duration",
		Message: fmt.Sprintf("profile exceeds %d samples", limit),
	}
}

// qpsSegments narrows a tagged list to QPS segments, dropping holes.
func qpsSegments(segments []Segment) ([]QPSSegment, error) {
	out := make([]QPSSegment, 0, len(segments))
	for i, seg := range segments {
		switch s := seg.(type) {
		case nil:
			continue
		case QPSSegment:
			out = append(out, s)
		case *QPSSegment:
			if s == nil {
				continue
			}
			out = append(out, *s)
		case ConcurrencySegment, *ConcurrencySegment:
			return nil, &MismatchError{Index: i, Want: ModeQPS, Got: ModeConcurrency}
		default:
			return nil, &MismatchError{Index: i, Want: ModeQPS, Got: s.Mode()}
		}
	}
	return out, nil
}

// concurrencySegments narrows a tagged list to concurrency segments. Overlap
// positions depend on order, so a hole is an error here.
func concurrencySegments(segments []Segment) ([]ConcurrencySegment, error) {
	out := make([]ConcurrencySegment, 0, len(segments))
	for i, seg := range segments {
		switch s := seg.(type) {
		case nil:
			return nil, &MismatchError{Index: i, Want: ModeConcurrency}
		case ConcurrencySegment:
			out = append(out, s)
		case *ConcurrencySegment:
			if s == nil {
				return nil, &MismatchError{Index: i, Want: ModeConcurrency}
			}
			out = append(out, *s)
		case QPSSegment, *QPSSegment:
			return nil, &MismatchError{Index: i, Want: ModeConcurrency, Got: ModeQPS}
		default:
			return nil, &MismatchError{Index: i, Want: ModeConcurrency, Got: s.Mode()}
		}
	}
	return out, nil
}
