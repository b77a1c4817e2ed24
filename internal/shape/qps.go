package shape

// GenerateQPS renders a single QPS segment into Duration samples.
//
// Sample i is StartQPS + i*(EndQPS-StartQPS)/Duration. Values are neither
// rounded nor clamped, so the last sample is one step short of EndQPS.
func GenerateQPS(seg QPSSegment) ([]float64, error) {
	if err := seg.Validate(); err != nil {
		return nil, err
	}

	delta := (seg.EndQPS - seg.StartQPS) / float64(seg.Duration)

	samples := make([]float64, seg.Duration)
	for i := range samples {
		samples[i] = seg.StartQPS + float64(i)*delta
	}
	return samples, nil
}

// MergeQPS concatenates segment arrays in order and brackets the result with
// a leading and trailing zero. Nil entries are dropped.
func MergeQPS(segments [][]float64) Timeline {
	size := 2
	for _, s := range segments {
		size += len(s)
	}

	tl := make(Timeline, 0, size)
	tl = append(tl, 0)
	for _, s := range segments {
		if s == nil {
			continue
		}
		tl = append(tl, s...)
	}
	return append(tl, 0)
}
