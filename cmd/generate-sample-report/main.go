package main

import (
	"fmt"
	"os"
	"time"

	"github.com/wesleyorama2/surge/internal/output"
	"github.com/wesleyorama2/surge/internal/report"
	"github.com/wesleyorama2/surge/internal/schedule"
	"github.com/wesleyorama2/surge/internal/shape"
)

func main() {
	result, err := createSampleResult()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outputPath := "sample-report.html"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := report.GenerateHTML(result, outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample report generated: %s\n", outputPath)
}

// createSampleResult compiles a warmup, plateau and cooldown qps profile.
func createSampleResult() (*output.Result, error) {
	segs := []shape.Segment{
		shape.QPSSegment{StartQPS: 0, EndQPS: 200, Duration: 60},
		shape.QPSSegment{StartQPS: 200, EndQPS: 200, Duration: 240},
		shape.QPSSegment{StartQPS: 200, EndQPS: 500, Duration: 30},
		shape.QPSSegment{StartQPS: 500, EndQPS: 0, Duration: 90},
	}

	tl, err := shape.Compile(shape.ModeQPS, segs)
	if err != nil {
		return nil, err
	}

	plan, err := schedule.Build(shape.ModeQPS, segs, 250*time.Millisecond)
	if err != nil {
		return nil, err
	}

	result := output.NewResult("Flash Sale Warmup", shape.ModeQPS, time.Second, tl)
	result.Description = "Ramp to steady traffic, spike for the sale start, then drain"
	result.Schedule = &plan
	return result, nil
}
