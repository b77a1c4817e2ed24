// Package output renders compiled profiles for terminals and machines.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/surge/internal/schedule"
	"github.com/wesleyorama2/surge/internal/shape"
	"github.com/wesleyorama2/surge/internal/stats"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
	// FormatCSV outputs one timeline sample per row
	FormatCSV OutputFormat = "csv"
)

// ParseFormat returns the format named by s (case-insensitive).
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, yaml or csv)", s)
	}
}

// Result is a compiled profile ready to be rendered.
type Result struct {
	Name        string
	Description string
	Mode        shape.Mode
	TimeUnit    time.Duration
	Timeline    shape.Timeline
	Summary     stats.Summary
	Schedule    *schedule.Plan
}

// NewResult summarizes a compiled timeline.
func NewResult(name string, mode shape.Mode, unit time.Duration, tl shape.Timeline) *Result {
	if unit <= 0 {
		unit = time.Second
	}
	return &Result{
		Name:     name,
		Mode:     mode,
		TimeUnit: unit,
		Timeline: tl,
		Summary:  stats.Summarize(tl),
	}
}

// Offset returns the wall-clock offset of timeline index i.
func (r *Result) Offset(i int) time.Duration {
	return time.Duration(i) * r.TimeUnit
}

// At returns the wall-clock offset of timeline index i. The leading zero and
// the first sample share offset zero; the trailing zero sits at Total.
func (r *Result) At(i int) time.Duration {
	if i < 1 {
		return 0
	}
	return r.Offset(i - 1)
}

// Total returns the wall-clock length of the samples.
func (r *Result) Total() time.Duration {
	return r.Offset(r.Timeline.Duration())
}

// document is the machine-readable shape of a Result.
type document struct {
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Mode        shape.Mode     `json:"mode" yaml:"mode"`
	TimeUnit    string         `json:"timeUnit" yaml:"timeUnit"`
	Duration    string         `json:"duration" yaml:"duration"`
	Timeline    []float64      `json:"timeline" yaml:"timeline,flow"`
	Summary     stats.Summary  `json:"summary" yaml:"summary"`
	Schedule    *schedule.Plan `json:"schedule,omitempty" yaml:"schedule,omitempty"`
}

func (r *Result) document() document {
	tl := r.Timeline
	if tl == nil {
		tl = shape.Timeline{}
	}
	return document{
		Name:        r.Name,
		Description: r.Description,
		Mode:        r.Mode,
		TimeUnit:    r.TimeUnit.String(),
		Duration:    r.Total().String(),
		Timeline:    tl,
		Summary:     r.Summary,
		Schedule:    r.Schedule,
	}
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, r *Result) error {
	return EncodeJSON(w, r.document())
}

// WriteYAML writes the result as YAML.
func WriteYAML(w io.Writer, r *Result) error {
	return EncodeYAML(w, r.document())
}

// EncodeJSON writes v as JSON indented by two spaces.
func EncodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// EncodeYAML writes v as YAML indented by two spaces.
func EncodeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// WriteCSV writes one row per timeline element, brackets included:
// index, wall-clock offset, value.
func WriteCSV(w io.Writer, r *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "offset", "value"}); err != nil {
		return err
	}
	for i, v := range r.Timeline {
		row := []string{
			strconv.Itoa(i),
			r.At(i).String(),
			strconv.FormatFloat(v, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write renders r in the given machine format. FormatText is handled by Console.
func Write(w io.Writer, format OutputFormat, r *Result) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	default:
		return fmt.Errorf("format %q is not a machine format", format)
	}
}
