package profile

import (
	"fmt"
	"time"

	"github.com/wesleyorama2/surge/internal/config"
	"github.com/wesleyorama2/surge/internal/output"
	"github.com/wesleyorama2/surge/internal/schedule"
	"github.com/wesleyorama2/surge/internal/shape"
)

// Core types, re-exported for library users.
type (
	Mode               = shape.Mode
	Segment            = shape.Segment
	QPSSegment         = shape.QPSSegment
	ConcurrencySegment = shape.ConcurrencySegment
	Timeline           = shape.Timeline
	Options            = shape.Options
	Plan               = schedule.Plan
	Result             = output.Result
)

// Profile modes.
const (
	ModeQPS         = shape.ModeQPS
	ModeConcurrency = shape.ModeConcurrency
)

// QuickName names profiles built by Quick.
const QuickName = "cli-profile"

// Profile is a validated segment list ready to compile.
type Profile struct {
	// Name of the profile (for reporting)
	Name string

	// Description of the profile (optional)
	Description string

	// Mode is the traffic model of every segment
	Mode Mode

	// Segments is the ordered segment list; a nil entry is a hole
	Segments []Segment

	// TimeUnit is the wall-clock length of one sample
	TimeUnit time.Duration

	// MaxLatency is the expected worst response time
	MaxLatency time.Duration

	// Options bound compilation
	Options Options
}

// Load reads a profile file. selector is an optional JSONPath naming the
// profile inside a larger document.
func Load(path, selector string) (*Profile, error) {
	cfg, err := config.LoadProfile(path, selector)
	if err != nil {
		return nil, err
	}
	return fromConfig(cfg)
}

// Parse parses profile data. The format follows the extension of path and
// defaults to YAML.
func Parse(data []byte, path string) (*Profile, error) {
	cfg, err := config.ParseConfig(data, path)
	if err != nil {
		return nil, err
	}
	return fromConfig(cfg)
}

// fromConfig applies defaults to cfg, validates it and converts its segments.
func fromConfig(cfg *config.ProfileConfig) (*Profile, error) {
	config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	segs, err := cfg.Segments()
	if err != nil {
		return nil, err
	}

	return &Profile{
		Name:        cfg.Name,
		Description: cfg.Description,
		Mode:        cfg.Mode,
		Segments:    segs,
		TimeUnit:    cfg.Settings.TimeUnit.GetDuration(config.DefaultTimeUnit),
		MaxLatency:  cfg.Settings.MaxLatency.GetDuration(config.DefaultMaxLatency),
		Options:     cfg.Options(),
	}, nil
}

// Quick builds a profile from the compact segment form. An empty mode means qps.
func Quick(mode Mode, segments string) (*Profile, error) {
	if mode == "" {
		mode = ModeQPS
	}
	if _, err := shape.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	segs, err := schedule.Parse(mode, segments)
	if err != nil {
		return nil, fmt.Errorf("invalid segments: %w", err)
	}

	return &Profile{
		Name:       QuickName,
		Mode:       mode,
		Segments:   segs,
		TimeUnit:   config.DefaultTimeUnit,
		MaxLatency: config.DefaultMaxLatency,
		Options:    shape.DefaultOptions(),
	}, nil
}

// Compile renders the profile into a timeline.
func (p *Profile) Compile() (Timeline, error) {
	return shape.CompileWithOptions(p.Mode, p.Segments, p.Options)
}

// Schedule renders the profile as load-generator properties.
func (p *Profile) Schedule() (Plan, error) {
	return schedule.Build(p.Mode, p.Segments, p.MaxLatency)
}

// Result compiles and summarizes the profile. The schedule is attached when
// the profile can be scheduled.
func (p *Profile) Result() (*Result, error) {
	tl, err := p.Compile()
	if err != nil {
		return nil, err
	}

	result := output.NewResult(p.Name, p.Mode, p.TimeUnit, tl)
	result.Description = p.Description

	if plan, err := p.Schedule(); err == nil {
		result.Schedule = &plan
	}
	return result, nil
}
