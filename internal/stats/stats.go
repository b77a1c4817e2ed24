// Package stats summarizes compiled load timelines.
package stats

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/wesleyorama2/surge/internal/shape"
)

// Samples are recorded in milli-units so fractional rates keep three decimals.
const scale = 1000

// Histogram significant figures: 3 gives 0.1% precision on percentiles.
const sigFigs = 3

// Summary describes a timeline's sample distribution.
//
// Min, Max, Mean and Area are exact. Percentiles and StdDev come from an HDR
// histogram and are accurate to about 0.1%.
type Summary struct {
	Samples int     `json:"samples" yaml:"samples"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Mean    float64 `json:"mean" yaml:"mean"`
	StdDev  float64 `json:"stdDev" yaml:"stdDev"`
	P50     float64 `json:"p50" yaml:"p50"`
	P90     float64 `json:"p90" yaml:"p90"`
	P95     float64 `json:"p95" yaml:"p95"`
	P99     float64 `json:"p99" yaml:"p99"`

	// Area is total requests (qps) or thread-units (concurrency)
	Area float64 `json:"area" yaml:"area"`

	// PeakIndex is the first index of Max in the bracketed timeline
	PeakIndex int `json:"peakIndex" yaml:"peakIndex"`
}

// Summarize computes the distribution of the timeline's samples, brackets
// excluded. An empty timeline yields a zero Summary with PeakIndex -1.
func Summarize(tl shape.Timeline) Summary {
	samples := tl.Samples()
	if len(samples) == 0 {
		return Summary{PeakIndex: -1}
	}

	s := Summary{
		Samples: len(samples),
		Min:     samples[0],
		Max:     samples[0],
		Area:    tl.Area(),
	}
	_, s.PeakIndex = tl.Peak()

	for _, v := range samples {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = s.Area / float64(len(samples))

	highest := toUnits(s.Max) + 1
	if highest < 2 {
		highest = 2
	}
	hist := hdrhistogram.New(1, highest, sigFigs)
	for _, v := range samples {
		// values are within [0, max] so recording cannot fail
		_ = hist.RecordValue(toUnits(v))
	}

	s.StdDev = hist.StdDev() / scale
	s.P50 = fromUnits(hist.ValueAtQuantile(50))
	s.P90 = fromUnits(hist.ValueAtQuantile(90))
	s.P95 = fromUnits(hist.ValueAtQuantile(95))
	s.P99 = fromUnits(hist.ValueAtQuantile(99))

	return s
}

func toUnits(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(math.Round(v * scale))
}

func fromUnits(u int64) float64 {
	return float64(u) / scale
}
