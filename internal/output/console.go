package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wesleyorama2/surge/internal/schedule"
	"github.com/wesleyorama2/surge/internal/shape"
)

const (
	ruleWidth = 56

	// Chart characters
	barFull    = "█"
	barEmpty   = " "
	axisLine   = "│"
	axisCorner = "└"
	axisBase   = "─"

	defaultChartWidth  = 60
	defaultChartHeight = 10
)

// Console writes human-readable profile output.
type Console struct {
	writer      io.Writer
	scheme      *ColorScheme
	useColors   bool
	chartWidth  int
	chartHeight int
}

// ConsoleConfig contains configuration for Console.
type ConsoleConfig struct {
	Writer      io.Writer
	NoColor     bool
	ForceColors bool
	ChartWidth  int
	ChartHeight int
}

// NewConsole creates a console writer. Colors are used when the writer is a
// terminal that supports them, unless NoColor is set.
func NewConsole(config ConsoleConfig) *Console {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ChartWidth <= 0 {
		config.ChartWidth = defaultChartWidth
	}
	if config.ChartHeight <= 0 {
		config.ChartHeight = defaultChartHeight
	}

	useColors := !config.NoColor &&
		(config.ForceColors || (IsTerminal(config.Writer) && supportsColors()))

	scheme := NoColorScheme()
	if useColors {
		scheme = ForcedColorScheme()
	}

	return &Console{
		writer:      config.Writer,
		scheme:      scheme,
		useColors:   useColors,
		chartWidth:  config.ChartWidth,
		chartHeight: config.ChartHeight,
	}
}

// UseColors reports whether output is colorized.
func (c *Console) UseColors() bool {
	return c.useColors
}

// PrintHeader prints a title between two rules.
func (c *Console) PrintHeader(title string) {
	rule := strings.Repeat("━", ruleWidth)
	c.writeln(c.scheme.Rule.Sprint(rule))
	c.writeln(c.scheme.Title.Sprint(title))
	c.writeln(c.scheme.Rule.Sprint(rule))
}

// PrintSummary prints the profile header and its statistics.
func (c *Console) PrintSummary(r *Result) {
	title := r.Name
	if title == "" {
		title = "profile"
	}
	c.PrintHeader(fmt.Sprintf("%s - %s profile", title, r.Mode))
	if r.Description != "" {
		c.writeln(r.Description)
	}

	s := r.Summary
	if s.Samples == 0 {
		c.row("Samples", "0 (empty profile)")
		return
	}

	c.row("Samples", fmt.Sprintf("%s (%s at %s per sample)",
		formatNumber(int64(s.Samples)), formatDuration(r.Total()), r.TimeUnit))
	c.row("Peak", fmt.Sprintf("%s %s at %s",
		c.scheme.Peak.Sprint(formatValue(s.Max)), unitName(r.Mode), formatDuration(r.At(s.PeakIndex))))
	c.row("Mean", formatValue(s.Mean))
	c.row("Min / Max", formatValue(s.Min)+" / "+formatValue(s.Max))
	c.row("P50 / P90", formatValue(s.P50)+" / "+formatValue(s.P90))
	c.row("P95 / P99", formatValue(s.P95)+" / "+formatValue(s.P99))
	c.row("Total", fmt.Sprintf("%s %s", formatValue(s.Area), totalName(r.Mode)))
}

// PrintChart draws the timeline samples as a bar chart.
func (c *Console) PrintChart(tl shape.Timeline) {
	c.writeln("")
	for _, line := range renderChart(tl.Samples(), c.chartWidth, c.chartHeight) {
		c.writeln(c.colorizeChartLine(line))
	}
}

// PrintSchedule prints the load-generator properties of a plan.
func (c *Console) PrintSchedule(plan schedule.Plan) {
	c.writeln("")
	c.row("Duration", fmt.Sprintf("%ds", plan.Duration))
	c.row("Threads", formatNumber(int64(plan.Threads)))
	for _, p := range plan.Properties() {
		c.row(p.Name, p.Value)
	}
}

// PrintValid reports a profile that passed validation.
func (c *Console) PrintValid(name string, samples int) {
	c.writeln(fmt.Sprintf("%s %s is valid (%s samples)",
		SuccessIcon(!c.useColors), name, formatNumber(int64(samples))))
}

// PrintInvalid reports a profile that failed validation, one problem per line
// when the error spans several lines.
func (c *Console) PrintInvalid(name string, err error) {
	c.writeln(fmt.Sprintf("%s %s is invalid", ErrorIcon(!c.useColors), name))
	for _, line := range strings.Split(strings.TrimRight(err.Error(), "\n"), "\n") {
		c.writeln("  " + c.scheme.Error.Sprint(strings.TrimSpace(line)))
	}
}

// PrintWarning prints a single warning line.
func (c *Console) PrintWarning(msg string) {
	c.writeln(fmt.Sprintf("%s %s", WarningIcon(!c.useColors), c.scheme.Warning.Sprint(msg)))
}

func (c *Console) row(label, value string) {
	c.writeln(fmt.Sprintf("  %s %s", c.scheme.Label.Sprint(fmt.Sprintf("%-16s", label+":")), value))
}

func (c *Console) colorizeChartLine(line string) string {
	if !c.useColors {
		return line
	}
	idx := strings.Index(line, axisLine)
	if idx < 0 {
		return c.scheme.Axis.Sprint(line)
	}
	head := line[:idx+len(axisLine)]
	return c.scheme.Axis.Sprint(head) + c.scheme.Bar.Sprint(line[idx+len(axisLine):])
}

func (c *Console) writeln(s string) {
	fmt.Fprintln(c.writer, s)
}

// renderChart draws samples into at most width columns and height rows plus
// an axis line. Each column shows the highest sample of its bucket.
func renderChart(samples []float64, width, height int) []string {
	if len(samples) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	cols := width
	if len(samples) < cols {
		cols = len(samples)
	}

	buckets := make([]float64, cols)
	for j := range buckets {
		from := j * len(samples) / cols
		to := (j + 1) * len(samples) / cols
		peak := samples[from]
		for _, v := range samples[from:to] {
			peak = math.Max(peak, v)
		}
		buckets[j] = peak
	}

	peak := 0.0
	for _, v := range buckets {
		peak = math.Max(peak, v)
	}

	top := formatValue(peak)
	labelWidth := len(top)
	if labelWidth < 1 {
		labelWidth = 1
	}

	lines := make([]string, 0, height+1)
	for row := height; row >= 1; row-- {
		label := ""
		switch row {
		case height:
			label = top
		case 1:
			label = "0"
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%*s %s", labelWidth, label, axisLine))
		for _, v := range buckets {
			level := 0
			if peak > 0 {
				level = int(math.Round(v / peak * float64(height)))
			}
			if level >= row {
				sb.WriteString(barFull)
			} else {
				sb.WriteString(barEmpty)
			}
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}

	lines = append(lines, fmt.Sprintf("%*s %s%s", labelWidth, "", axisCorner, strings.Repeat(axisBase, cols)))
	return lines
}

func unitName(mode shape.Mode) string {
	if mode == shape.ModeConcurrency {
		return "threads"
	}
	return "qps"
}

func totalName(mode shape.Mode) string {
	if mode == shape.ModeConcurrency {
		return "thread-units"
	}
	return "requests"
}

// formatValue prints whole numbers with thousands separators and fractions
// with at most two decimals.
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return formatNumber(int64(v))
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", d.Seconds()), ".0") + "s"
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
}

// formatNumber formats a number with thousands separators.
func formatNumber(n int64) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	offset := len(str) % 3
	if offset > 0 {
		result.WriteString(str[:offset])
	}
	for i := offset; i < len(str); i += 3 {
		if result.Len() > 0 {
			result.WriteString(",")
		}
		result.WriteString(str[i : i+3])
	}
	return result.String()
}
