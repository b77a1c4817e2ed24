package report

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wesleyorama2/surge/internal/output"
	"github.com/wesleyorama2/surge/internal/schedule"
	"github.com/wesleyorama2/surge/internal/shape"
)

var reportIDPattern = regexp.MustCompile(`<meta name="report-id" content="([^"]+)">`)

func createSampleResult() *output.Result {
	result := output.NewResult("Checkout Ramp", shape.ModeQPS, 500*time.Millisecond, shape.Timeline{0, 0, 2.5, 5, 0})
	result.Description = "warmup before the sale"
	result.Schedule = &schedule.Plan{
		LoadProfile:     "line(1,5,3s) line(5,0,1s)",
		ThreadsSchedule: "spawn(250,0s,0s,4s,1s)",
		Duration:        4,
		Threads:         250,
	}
	return result
}

func TestGenerateHTMLString(t *testing.T) {
	html, err := GenerateHTMLString(createSampleResult())
	if err != nil {
		t.Fatalf("GenerateHTMLString failed: %v", err)
	}

	expectedContents := []string{
		"<!DOCTYPE html>",
		"<title>Checkout Ramp - Traffic Shape Report</title>",
		"warmup before the sale",
		"chart.js",
		"timelineChart",
		"Samples",
		"Peak At",
		"Load Generator Schedule",
		"spawn(250,0s,0s,4s,1s)",
		"line(1,5,3s) line(5,0,1s)",
		`{"index":2,"offset":0.5,"value":2.5}`,
	}

	for _, expected := range expectedContents {
		if !strings.Contains(html, expected) {
			t.Errorf("HTML does not contain expected content: %s", expected)
		}
	}
}

func TestGenerateHTMLStringReportID(t *testing.T) {
	first, err := GenerateHTMLString(createSampleResult())
	if err != nil {
		t.Fatalf("GenerateHTMLString failed: %v", err)
	}
	second, err := GenerateHTMLString(createSampleResult())
	if err != nil {
		t.Fatalf("GenerateHTMLString failed: %v", err)
	}

	a := reportIDPattern.FindStringSubmatch(first)
	b := reportIDPattern.FindStringSubmatch(second)
	if a == nil || b == nil {
		t.Fatal("report id meta tag missing")
	}
	if _, err := uuid.Parse(a[1]); err != nil {
		t.Errorf("report id %q is not a uuid: %v", a[1], err)
	}
	if a[1] == b[1] {
		t.Errorf("two reports share id %s", a[1])
	}
}

func TestGenerateHTMLStringNilResult(t *testing.T) {
	_, err := GenerateHTMLString(nil)
	if err == nil {
		t.Error("Expected error for nil result, got nil")
	}
}

func TestGenerateHTMLStringEmptyProfile(t *testing.T) {
	result := output.NewResult("", shape.ModeConcurrency, time.Second, shape.Timeline{0, 0})

	html, err := GenerateHTMLString(result)
	if err != nil {
		t.Fatalf("GenerateHTMLString failed: %v", err)
	}

	if !strings.Contains(html, "<title>profile - Traffic Shape Report</title>") {
		t.Error("empty name should fall back to 'profile'")
	}
	if strings.Contains(html, `<canvas id="timelineChart">`) {
		t.Error("empty profile should not render a chart")
	}
	if strings.Contains(html, "Load Generator Schedule") {
		t.Error("schedule section rendered without a plan")
	}
}

func TestGenerateHTML(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "report.html")

	if err := GenerateHTML(createSampleResult(), outputPath); err != nil {
		t.Fatalf("GenerateHTML failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read HTML file: %v", err)
	}
	if !strings.Contains(string(content), "Checkout Ramp") {
		t.Error("HTML file does not contain profile name")
	}
}

func TestGenerateHTMLInvalidPath(t *testing.T) {
	err := GenerateHTML(createSampleResult(), filepath.Join(t.TempDir(), "missing", "report.html"))
	if err == nil {
		t.Error("Expected error for unwritable path, got nil")
	}
}

func TestConvertTimelineJSON(t *testing.T) {
	got, err := convertTimelineJSON(&output.Result{TimeUnit: time.Second})
	if err != nil || got != "[]" {
		t.Errorf("convertTimelineJSON(empty) = %q, %v", got, err)
	}

	got, err = convertTimelineJSON(output.NewResult("", shape.ModeQPS, time.Second, shape.Timeline{0, 3, 0}))
	if err != nil {
		t.Fatalf("convertTimelineJSON failed: %v", err)
	}
	want := `[{"index":0,"offset":0,"value":0},{"index":1,"offset":0,"value":3},{"index":2,"offset":1,"value":0}]`
	if got != want {
		t.Errorf("convertTimelineJSON() = %s, want %s", got, want)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m 30s"},
		{2 * time.Minute, "2m"},
		{time.Hour, "1h"},
		{3723 * time.Second, "1h 2m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := formatNumber(1234567); got != "1,234,567" {
		t.Errorf("formatNumber() = %q", got)
	}
	if got := formatNumber(-42); got != "-42" {
		t.Errorf("formatNumber() = %q", got)
	}
	if got := formatValue(0.333); got != "0.33" {
		t.Errorf("formatValue() = %q", got)
	}
	if got := formatValue(7.999); got != "8" {
		t.Errorf("formatValue() = %q", got)
	}
	if got := unitLabel(shape.ModeConcurrency); got != "threads" {
		t.Errorf("unitLabel() = %q", got)
	}
}
