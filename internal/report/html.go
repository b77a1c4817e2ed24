// Package report provides HTML report generation for compiled traffic profiles.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/wesleyorama2/surge/internal/output"
	"github.com/wesleyorama2/surge/internal/shape"
)

// ReportData contains all data needed to render the HTML report.
type ReportData struct {
	*output.Result
	ID           string
	GeneratedAt  time.Time
	TimelineJSON template.JS
}

// TimelinePoint represents a single timeline sample for JSON export.
type TimelinePoint struct {
	Index  int     `json:"index"`
	Offset float64 `json:"offset"`
	Value  float64 `json:"value"`
}

// GenerateHTML generates an HTML report for a compiled profile and writes it to a file.
func GenerateHTML(result *output.Result, outputPath string) error {
	html, err := GenerateHTMLString(result)
	if err != nil {
		return fmt.Errorf("failed to generate HTML: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	return nil
}

// GenerateHTMLString generates an HTML report for a compiled profile and returns it as a string.
// Every call stamps the report with a fresh ID.
func GenerateHTMLString(result *output.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}

	tmpl, err := template.New("report").Funcs(templateFuncs()).Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	timelineJSON, err := convertTimelineJSON(result)
	if err != nil {
		return "", fmt.Errorf("failed to convert timeline: %w", err)
	}

	data := ReportData{
		Result:       result,
		ID:           uuid.New().String(),
		GeneratedAt:  time.Now(),
		TimelineJSON: template.JS(timelineJSON),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// convertTimelineJSON converts the timeline, brackets included, to chart points.
// Offsets are in seconds.
func convertTimelineJSON(result *output.Result) (string, error) {
	if len(result.Timeline) == 0 {
		return "[]", nil
	}

	points := make([]TimelinePoint, len(result.Timeline))
	for i, v := range result.Timeline {
		points[i] = TimelinePoint{
			Index:  i,
			Offset: result.At(i).Seconds(),
			Value:  v,
		}
	}

	jsonBytes, err := json.Marshal(points)
	if err != nil {
		return "[]", err
	}

	return string(jsonBytes), nil
}

// templateFuncs returns the template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDuration": formatDuration,
		"formatNumber":   formatNumber,
		"formatValue":    formatValue,
		"unitLabel":      unitLabel,
		"peakOffset":     peakOffset,
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// formatNumber formats a large number with commas.
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	str := strconv.Itoa(n)
	if len(str) <= 3 {
		return str
	}

	result := ""
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}

// formatValue prints a sample with at most two decimals.
func formatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// unitLabel names the sample unit for a mode.
func unitLabel(mode shape.Mode) string {
	if mode == shape.ModeConcurrency {
		return "threads"
	}
	return "req/s"
}

// peakOffset returns the wall-clock offset of the peak sample.
func peakOffset(r *output.Result) time.Duration {
	return r.At(r.Summary.PeakIndex)
}
