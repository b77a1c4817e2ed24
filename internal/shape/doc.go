// Package shape compiles declarative ramp segments into a traffic timeline.
//
// A timeline is one sample per time unit describing the target load at every
// instant of a test. Two independent pipelines are provided:
//
//   - QPS: every segment is a linear ramp between a start and an end rate.
//     Segments run strictly one after another, so merging is concatenation.
//   - Concurrency: every segment is a thread group with a start delay, a
//     ramp-up, a steady phase and a ramp-down. Groups may overlap, so merging
//     sums the thread counts of every group active at a given instant.
//
// # Basic Usage
//
//	tl, err := shape.Compile(shape.ModeQPS, []shape.Segment{
//	    shape.QPSSegment{StartQPS: 0, EndQPS: 10, Duration: 5},
//	})
//	// tl == [0 0 2 4 6 8 0]
//
// Every function in this package is pure: there is no shared state, no I/O
// and no goroutine. Concurrent calls never interact.
package shape
