package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/surge/profile"
)

var errNoProfile = errors.New("either --config or --segments is required")

// sourceFlags selects where a profile comes from: a config file, or the
// compact --mode/--segments form.
type sourceFlags struct {
	configFile string
	selector   string
	mode       string
	segments   string
	latency    time.Duration
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.configFile, "config", "c", "", "Profile file (YAML or JSON)")
	cmd.Flags().StringVar(&s.selector, "select", "", "JSONPath of the profile inside the file (e.g. $.tests[0].profile)")
	cmd.Flags().StringVar(&s.mode, "mode", "", "Profile mode for --segments: qps or concurrency (default qps)")
	cmd.Flags().StringVar(&s.segments, "segments", "",
		"Compact segment list: start,end,duration per qps ramp, or threads,delay,rampup,duration,shutdown per thread group")
	cmd.Flags().DurationVar(&s.latency, "latency", 0, "Expected worst response time, overrides the profile's maxLatency")

	cmd.MarkFlagsMutuallyExclusive("config", "segments")
	cmd.MarkFlagsMutuallyExclusive("config", "mode")
	cmd.MarkFlagsMutuallyExclusive("select", "segments")
}

// load returns the profile named by the flags.
func (s *sourceFlags) load(logger *zap.Logger) (*profile.Profile, error) {
	var (
		p   *profile.Profile
		err error
	)
	switch {
	case s.configFile != "" && s.segments != "":
		return nil, errors.New("--config and --segments cannot be used together")
	case s.configFile != "":
		p, err = profile.Load(s.configFile, s.selector)
	case s.segments != "":
		p, err = profile.Quick(profile.Mode(s.mode), s.segments)
	default:
		return nil, errNoProfile
	}
	if err != nil {
		return nil, err
	}

	if s.latency > 0 {
		p.MaxLatency = s.latency
	}

	logger.Debug("profile loaded",
		zap.String("name", p.Name),
		zap.String("mode", string(p.Mode)),
		zap.Int("segments", len(p.Segments)),
		zap.Duration("timeUnit", p.TimeUnit),
		zap.Duration("maxLatency", p.MaxLatency),
	)
	return p, nil
}
