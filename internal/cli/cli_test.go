package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wesleyorama2/surge/internal/schedule"
	"github.com/wesleyorama2/surge/internal/shape"
	"github.com/wesleyorama2/surge/profile"
)

const rampProfile = `name: warmup
description: ramp then hold
mode: qps
settings:
  maxLatency: 500ms
segments:
  - startQPS: 0
    endQPS: 10
    duration: 5
  - startQPS: 10
    endQPS: 10
    duration: 3
`

const badProfile = `mode: qps
segments:
  - startQPS: 1
    endQPS: 5
    duration: 0
`

// runCLI executes a fresh command tree and captures its output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCompile_QuickModeJSON(t *testing.T) {
	stdout, _, err := runCLI(t, "compile", "--mode", "qps", "--segments", "0,10,5", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Name     string    `json:"name"`
		Mode     string    `json:"mode"`
		Timeline []float64 `json:"timeline"`
		Schedule struct {
			LoadProfile string `json:"loadProfile"`
		} `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), stdout)

	assert.Equal(t, profile.QuickName, doc.Name)
	assert.Equal(t, "qps", doc.Mode)
	assert.Equal(t, []float64{0, 0, 2, 4, 6, 8, 0}, doc.Timeline)
	assert.Contains(t, doc.Schedule.LoadProfile, "line(1,10,5s)")
}

func TestCompile_ConfigText(t *testing.T) {
	path := writeFile(t, "profile.yaml", rampProfile)

	stdout, _, err := runCLI(t, "compile", "-c", path)
	require.NoError(t, err)

	for _, want := range []string{
		"warmup - qps profile",
		"ramp then hold",
		"Samples:",
		"8 (8s at 1s per sample)",
		"threads_schedule:",
		"└────────",
	} {
		assert.Contains(t, stdout, want)
	}
	assert.NotContains(t, stdout, "\033[")
}

func TestCompile_OutputFiles(t *testing.T) {
	path := writeFile(t, "profile.yaml", rampProfile)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out", "timeline.csv")
	htmlPath := filepath.Join(dir, "report")

	stdout, stderr, err := runCLI(t, "compile", "-c", path, "--format", "csv", "--output", csvPath, "--html", htmlPath)
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Output: "+csvPath)
	assert.Contains(t, stderr, "Report: "+htmlPath+".html")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "index,offset,value", lines[0])
	assert.Len(t, lines, 11)

	html, err := os.ReadFile(htmlPath + ".html")
	require.NoError(t, err)
	assert.Contains(t, string(html), "warmup")
}

func TestCompile_Selector(t *testing.T) {
	suite := `{"tests": [{"profile": {"mode": "concurrency", "segments": [
		{"threadCount": 2, "initialDelay": 0, "rampupTime": 2, "duration": 2, "shutdownTime": 0}
	]}}]}`
	path := writeFile(t, "suite.json", suite)

	stdout, _, err := runCLI(t, "compile", "-c", path, "--select", "$.tests[0].profile", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Mode     string    `json:"mode"`
		Timeline []float64 `json:"timeline"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "concurrency", doc.Mode)
	assert.Equal(t, []float64{0, 0, 1, 2, 2, 0, 0}, doc.Timeline)
}

func TestCompile_Errors(t *testing.T) {
	bad := writeFile(t, "bad.yaml", badProfile)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no source", []string{"compile"}, errNoProfile.Error()},
		{"unknown format", []string{"compile", "--segments", "1,2,3", "--format", "xml"}, "unknown output format"},
		{"unknown mode", []string{"compile", "--mode", "rps", "--segments", "1,2,3"}, "rps"},
		{"truncated segments", []string{"compile", "--segments", "1,2"}, "incomplete"},
		{"invalid profile", []string{"compile", "-c", bad}, "segments[0].duration"},
		{"config with segments", []string{"compile", "-c", bad, "--segments", "1,2,3"}, "none of the others"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	good := writeFile(t, "good.yaml", rampProfile)
	bad := writeFile(t, "bad.yaml", badProfile)

	stdout, _, err := runCLI(t, "validate", "-c", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ "+good+" is valid (8 samples)")

	stdout, _, err = runCLI(t, "validate", good, bad)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 profiles invalid", err.Error())
	assert.Contains(t, stdout, "✗ "+bad+" is invalid")
	assert.Contains(t, stdout, "segments[0].duration")

	_, _, err = runCLI(t, "validate")
	assert.Error(t, err)
}

func TestSchedule(t *testing.T) {
	stdout, _, err := runCLI(t, "schedule", "--mode", "concurrency", "--segments", "10,0,2,5,1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cli-profile - concurrency schedule")
	assert.Contains(t, stdout, "spawn(10,0s,2s,5s,1s)")

	stdout, _, err = runCLI(t, "schedule", "--mode", "concurrency", "--segments", "10,0,2,5,1", "--jmeter-flags")
	require.NoError(t, err)
	assert.Equal(t, "-Jthreads_schedule=spawn(10,0s,2s,5s,1s)\n", stdout)

	stdout, _, err = runCLI(t, "schedule", "--segments", "1,10,5", "--latency", "250ms", "--format", "json")
	require.NoError(t, err)
	var plan schedule.Plan
	require.NoError(t, json.Unmarshal([]byte(stdout), &plan))
	assert.Equal(t, "line(1,10,5s) line(10,0,1s)", plan.LoadProfile)
	assert.Equal(t, 6, plan.Duration)
}

func TestSchedule_TimeUnitWarning(t *testing.T) {
	path := writeFile(t, "fast.yaml", `name: fast
settings:
  timeUnit: 500ms
segments:
  - startQPS: 1
    endQPS: 2
    duration: 4
`)

	stdout, _, err := runCLI(t, "schedule", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "⚠ schedules count seconds; fast runs at 500ms per sample")

	_, _, err = runCLI(t, "schedule", "-c", path, "--format", "csv")
	assert.Error(t, err)
}

func TestSourceFlags_Load(t *testing.T) {
	flags := &sourceFlags{segments: "0 5 2", latency: 250 * time.Millisecond}
	p, err := flags.load(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, profile.QuickName, p.Name)
	assert.Equal(t, shape.ModeQPS, p.Mode)
	assert.Equal(t, 250*time.Millisecond, p.MaxLatency)
	require.Len(t, p.Segments, 1)
	assert.Equal(t, shape.QPSSegment{StartQPS: 0, EndQPS: 5, Duration: 2}, p.Segments[0])

	flags = &sourceFlags{mode: "concurrency", segments: "1,2,3"}
	_, err = flags.load(zap.NewNop())
	assert.ErrorIs(t, err, schedule.ErrTruncated)

	_, err = (&sourceFlags{}).load(zap.NewNop())
	assert.ErrorIs(t, err, errNoProfile)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = newLogger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
