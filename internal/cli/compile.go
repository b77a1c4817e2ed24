package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/surge/internal/output"
	"github.com/wesleyorama2/surge/internal/report"
)

type compileFlags struct {
	source     sourceFlags
	format     string
	outputPath string
	htmlPath   string
}

func newCompileCmd(opts *rootOptions) *cobra.Command {
	flags := &compileFlags{}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a profile into a timeline",
		Long: `Compile a traffic-shape profile into its per-sample timeline and print a
summary, a chart and the load-generator schedule.

Config file mode:
  surge compile --config profile.yaml

Profile embedded in a larger document:
  surge compile --config suite.json --select '$.tests[0].profile'

Quick CLI mode:
  surge compile --mode qps --segments "0,100,60;100,100,300;100,0,60"
  surge compile --mode concurrency --segments "10,0,5,60,5 20,30,5,30,5"

Machine-readable output:
  surge compile -c profile.yaml --format json --output timeline.json
  surge compile -c profile.yaml --html report.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, opts, flags)
		},
	}

	flags.source.register(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(output.FormatText), "Output format (text, json, yaml, csv)")
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&flags.htmlPath, "html", "", "Also write an HTML report to this file")

	return cmd
}

func runCompile(cmd *cobra.Command, opts *rootOptions, flags *compileFlags) error {
	format, err := output.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	p, err := flags.source.load(opts.logger)
	if err != nil {
		return err
	}

	result, err := p.Result()
	if err != nil {
		return fmt.Errorf("failed to compile profile: %w", err)
	}
	opts.logger.Debug("profile compiled",
		zap.Int("samples", result.Summary.Samples),
		zap.Bool("scheduled", result.Schedule != nil),
	)

	w := cmd.OutOrStdout()
	if flags.outputPath != "" {
		f, err := createOutputFile(flags.outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := writeResult(w, format, result, opts.noColor || flags.outputPath != ""); err != nil {
		return err
	}
	if flags.outputPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", flags.outputPath)
	}

	if flags.htmlPath != "" {
		path, err := outputHTMLReport(result, flags.htmlPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report: %s\n", path)
	}

	return nil
}

// writeResult renders the result in the requested format.
func writeResult(w io.Writer, format output.OutputFormat, result *output.Result, noColor bool) error {
	if format != output.FormatText {
		return output.Write(w, format, result)
	}

	console := output.NewConsole(output.ConsoleConfig{Writer: w, NoColor: noColor})
	console.PrintSummary(result)
	if result.Summary.Samples > 0 {
		console.PrintChart(result.Timeline)
	}
	if result.Schedule != nil {
		console.PrintSchedule(*result.Schedule)
	}
	return nil
}

// createOutputFile creates path and any missing parent directories.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// outputHTMLReport generates and saves an HTML report, returning the path written.
func outputHTMLReport(result *output.Result, outputPath string) (string, error) {
	// Ensure output path has .html extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".html") {
		outputPath = outputPath + ".html"
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := report.GenerateHTML(result, outputPath); err != nil {
		return "", fmt.Errorf("failed to generate HTML report: %w", err)
	}
	return outputPath, nil
}
