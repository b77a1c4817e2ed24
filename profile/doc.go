// Package profile provides a library API for compiling traffic-shape profiles.
//
// A profile is an ordered list of segments in one of two modes:
//
//   - qps: linear request-rate ramps played back to back
//   - concurrency: thread groups that may start late and overlap
//
// Compiling a profile produces a Timeline with one sample per time unit,
// bracketed by a leading and a trailing zero.
//
// # Quick Start
//
// Load a profile file, compile it and read its statistics:
//
//	p, err := profile.Load("checkout.yaml", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := p.Result()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Peak: %v at sample %d\n", result.Summary.Max, result.Summary.PeakIndex)
//
// # Profile Files
//
// Profiles use YAML or JSON format:
//
//	name: "Checkout warmup"
//	mode: qps
//	settings:
//	  timeUnit: 1s
//	  maxLatency: 250ms
//	segments:
//	  - startQPS: 0
//	    endQPS: 100
//	    duration: 60
//	  - startQPS: 100
//	    endQPS: 100
//	    duration: 300
//
// A profile nested inside a larger document can be picked with a JSONPath
// selector:
//
//	p, err := profile.Load("suite.json", "$.tests[0].profile")
//
// # Compact Segments
//
// Quick builds a profile from the compact form used on the command line:
//
//	p, err := profile.Quick(profile.ModeConcurrency, "10,0,5,60,5 20,30,5,30,5")
//
// # Load-Generator Schedules
//
// Schedule renders the profile as Throughput Shaping Timer properties:
//
//	plan, err := p.Schedule()
//	for _, prop := range plan.Properties() {
//	    fmt.Println(prop.Flag())
//	}
package profile
