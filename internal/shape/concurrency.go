package shape

import "fmt"

// Step is the local rendering of one concurrency segment.
type Step struct {
	// Offset is where the step starts, relative to the timeline built so far.
	Offset int `json:"offset"`

	// Samples holds ramp-up, steady and ramp-down values plus a trailing zero.
	Samples []float64 `json:"samples"`
}

// Len returns the length of the packed form: one offset element plus the samples.
func (s Step) Len() int {
	return 1 + len(s.Samples)
}

// Packed returns the step with its offset stored as the leading element.
// This is the representation load-generator front-ends exchange.
func (s Step) Packed() []float64 {
	packed := make([]float64, 0, s.Len())
	packed = append(packed, float64(s.Offset))
	return append(packed, s.Samples...)
}

// GenerateConcurrency renders a thread group.
//
// The samples are, in order: RampupTime values i*ThreadCount/RampupTime
// (i from 0), Duration values equal to ThreadCount, ShutdownTime values
// ThreadCount-k*ThreadCount/ShutdownTime (k from 1, so the last one is 0),
// and one trailing zero. A zero-length ramp contributes no samples.
func GenerateConcurrency(seg ConcurrencySegment) (Step, error) {
	if err := seg.Validate(); err != nil {
		return Step{}, err
	}

	threads := float64(seg.ThreadCount)
	samples := make([]float64, 0, seg.Span())

	if seg.RampupTime > 0 {
		up := threads / float64(seg.RampupTime)
		for i := 0; i < seg.RampupTime; i++ {
			samples = append(samples, float64(i)*up)
		}
	}

	for i := 0; i < seg.Duration; i++ {
		samples = append(samples, threads)
	}

	if seg.ShutdownTime > 0 {
		down := threads / float64(seg.ShutdownTime)
		for k := 1; k <= seg.ShutdownTime; k++ {
			samples = append(samples, threads-float64(k)*down)
		}
	}

	samples = append(samples, 0)

	return Step{Offset: seg.InitialDelay, Samples: samples}, nil
}

// ConcurrencyState is the accumulator of the concurrency fold.
// Overlay never mutates a state; it always returns a new one.
type ConcurrencyState struct {
	// Offset is the absolute cursor: the sum of all step offsets folded so far.
	Offset int

	// Shape is the timeline built so far, without brackets.
	Shape []float64
}

// Seed starts a fold from the first step.
func Seed(first Step) ConcurrencyState {
	shape := make([]float64, len(first.Samples))
	copy(shape, first.Samples)
	return ConcurrencyState{Offset: first.Offset, Shape: shape}
}

// Overlay adds step onto state.Shape starting at step.Offset.
//
// The shape is zero-extended so that it covers the step: when the step starts
// past the end of the shape the gap is zero-filled. Overlapping samples are
// summed. The shape never shrinks.
//
// step must be a value returned by GenerateConcurrency: Overlay panics on a
// negative offset and does not bound the size it allocates. Compile checks
// the folded size against Options.MaxSamples before overlaying.
func Overlay(state ConcurrencyState, step Step) ConcurrencyState {
	at := step.Offset
	if at < 0 {
		panic(fmt.Sprintf("shape: negative step offset %d", at))
	}

	sizeOfShape := len(state.Shape)
	sizeOfStep := len(step.Samples)
	end := at + sizeOfStep

	size := sizeOfShape
	if at > sizeOfShape {
		size += (at - sizeOfShape) + sizeOfStep
	} else if end > sizeOfShape {
		size += end - sizeOfShape
	}

	// prefix is copied as-is, the suffix gets the step added on top
	shape := make([]float64, size)
	copy(shape, state.Shape)
	for j, v := range step.Samples {
		shape[at+j] += v
	}

	return ConcurrencyState{
		Offset: state.Offset + at,
		Shape:  shape,
	}
}

// Fold overlays every step in order and returns the final state.
func Fold(steps []Step) ConcurrencyState {
	if len(steps) == 0 {
		return ConcurrencyState{}
	}

	state := Seed(steps[0])
	for _, step := range steps[1:] {
		state = Overlay(state, step)
	}
	return state
}

// MergeConcurrency overlays the steps in order and brackets the result with
// a leading and trailing zero.
//
// The first step seeds the shape; its offset only initialises the cursor.
// Every later offset is relative to the shape built so far.
func MergeConcurrency(steps []Step) Timeline {
	state := Fold(steps)

	tl := make(Timeline, 0, len(state.Shape)+2)
	tl = append(tl, 0)
	tl = append(tl, state.Shape...)
	return append(tl, 0)
}

// foldLen returns the length of the shape Fold would build from steps with
// the given offsets and sample counts, or -1 once it exceeds limit.
func foldLen(offsets, sizes []int, limit int) int {
	if len(sizes) == 0 {
		return 0
	}

	size := sizes[0]
	if size > limit {
		return -1
	}
	for i := 1; i < len(sizes); i++ {
		at, n := offsets[i], sizes[i]
		if n > limit || at > limit-n {
			return -1
		}
		if end := at + n; end > size {
			size = end
		}
	}
	return size
}
