package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/amalgam/pkg/amalg"
	"github.com/Sumatoshi-tech/amalgam/pkg/config"
)

// Sentinel errors for target selection.
var (
	// ErrNoTargets is returned when neither the config file nor the CLI
	// flags define anything to build.
	ErrNoTargets = errors.New(
		"no targets to build. Define targets in amalgam.yaml or pass --pattern/--output/--namespace",
	)

	// ErrTargetNotFound indicates the --target selector matched nothing.
	ErrTargetNotFound = errors.New("target not found")
)

// BuildCommand holds configuration for the build command.
type BuildCommand struct {
	configPath string
	targetName string

	// Ad-hoc target flags for config-less use.
	pattern     string
	output      string
	namespace   string
	language    string
	licensePath string
	licenseWrap bool

	verbose bool
	silent  bool
	noColor bool
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	bc := &BuildCommand{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Amalgamate all configured targets",
		Long: "Amalgamate every configured target: merge the files matched by each\n" +
			"target's glob pattern into its output file.",
		Args: cobra.NoArgs,
		RunE: bc.run,
	}

	cmd.Flags().StringVarP(&bc.configPath, "config", "c", "", "Config file path (default: amalgam.yaml in . or ./config)")
	cmd.Flags().StringVarP(&bc.targetName, "target", "t", "", "Build only the named target")

	cmd.Flags().StringVar(&bc.pattern, "pattern", "", "Input glob pattern (ad-hoc target, bypasses config targets)")
	cmd.Flags().StringVarP(&bc.output, "output", "o", "", "Output file path (ad-hoc target)")
	cmd.Flags().StringVarP(&bc.namespace, "namespace", "n", "", "Wrapper namespace name (ad-hoc target)")
	cmd.Flags().StringVar(&bc.language, "language", "", "Language profile: csharp, cpp (default: detect)")
	cmd.Flags().StringVar(&bc.licensePath, "license", "", "License file emitted as the output header")
	cmd.Flags().BoolVar(&bc.licenseWrap, "license-wrap", false, "Wrap the license in a block comment")

	cmd.Flags().BoolVarP(&bc.verbose, "verbose", "v", false, "Verbose (debug) logging")
	cmd.Flags().BoolVar(&bc.silent, "silent", false, "Suppress the summary table and non-error logs")
	cmd.Flags().BoolVar(&bc.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (bc *BuildCommand) run(cmd *cobra.Command, _ []string) error {
	if bc.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	targets, logging, err := bc.resolveTargets()
	if err != nil {
		return err
	}

	logger := buildLogger(cmd.ErrOrStderr(), logging, bc.verbose, bc.silent)

	rows := make([]summaryRow, 0, len(targets))

	var runErr error

	for _, target := range targets {
		result, targetErr := amalg.New(target.Job(), logger).Run()
		if targetErr != nil {
			rows = append(rows, summaryRow{
				Target: target.DisplayName(),
				Status: statusFailed,
			})
			runErr = fmt.Errorf("target %q: %w", target.DisplayName(), targetErr)

			break
		}

		rows = append(rows, summaryRow{
			Target:  target.DisplayName(),
			Files:   len(result.Files),
			Imports: result.Imports,
			Bytes:   len(result.Output),
			Status:  statusOK,
		})
	}

	if !bc.silent {
		renderSummary(cmd.OutOrStdout(), rows)
	}

	return runErr
}

// resolveTargets picks the target list: ad-hoc flags win over the config
// file; --target narrows the config file's list to one entry.
func (bc *BuildCommand) resolveTargets() ([]config.TargetConfig, config.LoggingConfig, error) {
	if bc.pattern != "" || bc.output != "" || bc.namespace != "" {
		target := config.TargetConfig{
			Name:      "cli",
			Pattern:   bc.pattern,
			Output:    bc.output,
			Namespace: bc.namespace,
			Language:  bc.language,
			License: config.LicenseConfig{
				File: bc.licensePath,
				Wrap: bc.licenseWrap,
			},
		}

		err := config.ValidateTarget(target)
		if err != nil {
			return nil, config.LoggingConfig{}, err
		}

		return []config.TargetConfig{target}, config.LoggingConfig{}, nil
	}

	cfg, err := config.LoadConfig(bc.configPath)
	if err != nil {
		return nil, config.LoggingConfig{}, err
	}

	targets := cfg.Targets

	if bc.targetName != "" {
		targets = nil

		for _, target := range cfg.Targets {
			if target.Name == bc.targetName {
				targets = append(targets, target)
			}
		}

		if len(targets) == 0 {
			return nil, config.LoggingConfig{}, fmt.Errorf("%w: %q", ErrTargetNotFound, bc.targetName)
		}
	}

	if len(targets) == 0 {
		return nil, config.LoggingConfig{}, ErrNoTargets
	}

	return targets, cfg.Logging, nil
}
