package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/surge/internal/config"
	"github.com/wesleyorama2/surge/internal/output"
)

type scheduleFlags struct {
	source sourceFlags
	format string
	jflags bool
}

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	flags := &scheduleFlags{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the load-generator schedule for a profile",
		Long: `Render a profile as load-generator properties: a throughput shape of
line(start,end,Ns) entries in qps mode, and a thread schedule of
spawn(threads,delay,rampup,duration,shutdown) entries.

  surge schedule -c profile.yaml
  surge schedule --mode qps --segments "1,10,60" --latency 250ms
  surge schedule -c profile.yaml --jmeter-flags`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, opts, flags)
		},
	}

	flags.source.register(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(output.FormatText), "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&flags.jflags, "jmeter-flags", false, "Print the properties as -Jname=value flags, one per line")

	return cmd
}

func runSchedule(cmd *cobra.Command, opts *rootOptions, flags *scheduleFlags) error {
	format, err := output.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	if format == output.FormatCSV {
		return fmt.Errorf("format %q is not supported for schedules", format)
	}

	p, err := flags.source.load(opts.logger)
	if err != nil {
		return err
	}

	plan, err := p.Schedule()
	if err != nil {
		return fmt.Errorf("failed to build schedule: %w", err)
	}
	opts.logger.Debug("schedule built",
		zap.Int("duration", plan.Duration),
		zap.Int("threads", plan.Threads),
	)

	w := cmd.OutOrStdout()

	if flags.jflags {
		for _, prop := range plan.Properties() {
			fmt.Fprintln(w, prop.Flag())
		}
		return nil
	}

	switch format {
	case output.FormatJSON:
		return output.EncodeJSON(w, plan)
	case output.FormatYAML:
		return output.EncodeYAML(w, plan)
	}

	name := p.Name
	if name == "" {
		name = "profile"
	}

	console := output.NewConsole(output.ConsoleConfig{Writer: w, NoColor: opts.noColor})
	if p.TimeUnit != config.DefaultTimeUnit {
		console.PrintWarning(fmt.Sprintf("schedules count seconds; %s runs at %s per sample", name, p.TimeUnit))
	}
	console.PrintHeader(fmt.Sprintf("%s - %s schedule", name, p.Mode))
	console.PrintSchedule(plan)
	return nil
}
