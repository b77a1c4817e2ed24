package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/surge/internal/output"
	"github.com/wesleyorama2/surge/profile"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		configFile string
		selector   string
	)

	cmd := &cobra.Command{
		Use:   "validate [profile...]",
		Short: "Validate profile files without printing the timeline",
		Long: `Check one or more profile files. Each file is parsed, checked against the
profile schema, validated field by field and compiled. Every problem found
is reported; the command fails if any profile is invalid.

  surge validate -c profile.yaml
  surge validate profiles/*.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if configFile != "" {
				files = append([]string{configFile}, files...)
			}
			if len(files) == 0 {
				return errors.New("no profile to validate: pass --config or file arguments")
			}
			return runValidate(cmd, opts, files, selector)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Profile file (YAML or JSON)")
	cmd.Flags().StringVar(&selector, "select", "", "JSONPath of the profile inside each file")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *rootOptions, files []string, selector string) error {
	console := output.NewConsole(output.ConsoleConfig{Writer: cmd.OutOrStdout(), NoColor: opts.noColor})

	invalid := 0
	for _, file := range files {
		samples, err := validateFile(file, selector)
		if err != nil {
			invalid++
			opts.logger.Debug("profile rejected", zap.String("file", file), zap.Error(err))
			console.PrintInvalid(file, err)
			continue
		}
		console.PrintValid(file, samples)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d profiles invalid", invalid, len(files))
	}
	return nil
}

// validateFile loads and compiles a profile, returning its sample count.
func validateFile(path, selector string) (int, error) {
	p, err := profile.Load(path, selector)
	if err != nil {
		return 0, err
	}
	tl, err := p.Compile()
	if err != nil {
		return 0, err
	}
	return tl.Duration(), nil
}
