package shape

// Timeline is the compiled load profile: one sample per time unit, bracketed
// by a leading and a trailing zero.
type Timeline []float64

// Samples returns the timeline without its bracketing zeros.
func (t Timeline) Samples() []float64 {
	if len(t) < 2 {
		return nil
	}
	return t[1 : len(t)-1]
}

// Duration returns the number of time units covered by the samples.
func (t Timeline) Duration() int {
	return len(t.Samples())
}

// Peak returns the highest sample and the first index where it occurs.
// The index refers to the bracketed timeline. An empty timeline returns (0, -1).
func (t Timeline) Peak() (float64, int) {
	if len(t) == 0 {
		return 0, -1
	}

	peak, at := t[0], 0
	for i, v := range t {
		if v > peak {
			peak, at = v, i
		}
	}
	return peak, at
}

// Area returns the sum of all samples: total requests for a QPS timeline,
// thread-units for a concurrency timeline.
func (t Timeline) Area() float64 {
	var total float64
	for _, v := range t {
		total += v
	}
	return total
}
