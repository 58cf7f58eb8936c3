package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/amalgam/pkg/config"
)

// defaultManifest is the manifest path validated when none is given.
const defaultManifest = "amalgam.yaml"

// ErrManifestInvalid indicates the manifest failed schema validation.
var ErrManifestInvalid = errors.New("manifest failed schema validation")

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Validate an amalgam.yaml manifest against the schema",
		Long: `Validate a manifest file against the canonical amalgam schema.

Examples:
  amalgam validate
  amalgam validate build/amalgam.yaml
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultManifest
			if len(args) > 0 {
				path = args[0]
			}

			return runValidate(cmd, path, noColor)
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, noColor bool) error {
	if noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	out := cmd.OutOrStdout()

	issues, err := config.ValidateManifest(path)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		color.New(color.FgGreen).Fprintf(out, "manifest is valid (%s)\n", path)

		return nil
	}

	color.New(color.FgRed).Fprintf(out, "manifest validation failed (%s)\n", path)

	fmt.Fprintf(out, "\nErrors:\n")

	for _, issue := range issues {
		fmt.Fprintf(out, "  - %s: %s\n", issue.Field, issue.Description)
	}

	return fmt.Errorf("%w: %s", ErrManifestInvalid, path)
}
