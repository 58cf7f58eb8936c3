package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/amalgam/pkg/amalg"
	"github.com/Sumatoshi-tech/amalgam/pkg/config"
	"github.com/Sumatoshi-tech/amalgam/pkg/textutil"
)

// Drift statuses reported by check.
const (
	driftUpToDate = "up-to-date"
	driftStale    = "stale"
	driftMissing  = "missing"
)

// Output formats for the drift report.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// Sentinel errors for the check command.
var (
	// ErrDrift indicates at least one output file does not match a fresh
	// build of its inputs.
	ErrDrift = errors.New("outputs out of date; run `amalgam build`")

	// ErrBadFormat indicates an unsupported --format value.
	ErrBadFormat = errors.New("unsupported format (want text, json, or yaml)")
)

// driftEntry is the per-target drift report.
type driftEntry struct {
	Target       string `json:"target"        yaml:"target"`
	Status       string `json:"status"        yaml:"status"`
	AddedLines   int    `json:"added_lines"   yaml:"added_lines"`
	RemovedLines int    `json:"removed_lines" yaml:"removed_lines"`

	diff string
}

// CheckCommand holds configuration for the check command.
type CheckCommand struct {
	configPath string
	targetName string
	format     string
	verbose    bool
	noColor    bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cc := &CheckCommand{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify outputs are up to date with their inputs",
		Long: "Rebuild every configured target in memory and compare the result with\n" +
			"the committed output file. Exits non-zero on drift.",
		Args: cobra.NoArgs,
		RunE: cc.run,
	}

	cmd.Flags().StringVarP(&cc.configPath, "config", "c", "", "Config file path (default: amalgam.yaml in . or ./config)")
	cmd.Flags().StringVarP(&cc.targetName, "target", "t", "", "Check only the named target")
	cmd.Flags().StringVar(&cc.format, "format", formatText, "Report format: text, json, yaml")
	cmd.Flags().BoolVarP(&cc.verbose, "verbose", "v", false, "Verbose (debug) logging")
	cmd.Flags().BoolVar(&cc.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (cc *CheckCommand) run(cmd *cobra.Command, _ []string) error {
	if cc.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	if cc.format != formatText && cc.format != formatJSON && cc.format != formatYAML {
		return fmt.Errorf("%w: %q", ErrBadFormat, cc.format)
	}

	cfg, err := config.LoadConfig(cc.configPath)
	if err != nil {
		return err
	}

	targets := cfg.Targets
	if cc.targetName != "" {
		targets = filterTargets(targets, cc.targetName)
		if len(targets) == 0 {
			return fmt.Errorf("%w: %q", ErrTargetNotFound, cc.targetName)
		}
	}

	if len(targets) == 0 {
		return ErrNoTargets
	}

	logger := buildLogger(cmd.ErrOrStderr(), cfg.Logging, cc.verbose, cc.format != formatText)

	entries := make([]driftEntry, 0, len(targets))
	drift := false

	for _, target := range targets {
		entry, checkErr := cc.checkTarget(target, logger)
		if checkErr != nil {
			return checkErr
		}

		if entry.Status != driftUpToDate {
			drift = true
		}

		entries = append(entries, entry)
	}

	renderErr := cc.renderReport(cmd.OutOrStdout(), entries)
	if renderErr != nil {
		return renderErr
	}

	if drift {
		return ErrDrift
	}

	return nil
}

// checkTarget rebuilds one target in memory and diffs it against the
// existing output file.
func (cc *CheckCommand) checkTarget(target config.TargetConfig, logger *slog.Logger) (driftEntry, error) {
	entry := driftEntry{Target: target.DisplayName()}

	result, err := amalg.New(target.Job(), logger).Build()
	if err != nil {
		return entry, fmt.Errorf("target %q: %w", target.DisplayName(), err)
	}

	existing, readErr := os.ReadFile(target.Output)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			entry.Status = driftMissing
			entry.AddedLines = countLines(string(result.Output))

			return entry, nil
		}

		return entry, fmt.Errorf("read output %s: %w", target.Output, readErr)
	}

	if string(existing) == string(result.Output) {
		entry.Status = driftUpToDate
		logger.Debug("output up to date", "target", entry.Target)

		return entry, nil
	}

	entry.Status = driftStale

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(existing), string(result.Output), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			entry.AddedLines += countLines(diff.Text)
		case diffmatchpatch.DiffDelete:
			entry.RemovedLines += countLines(diff.Text)
		case diffmatchpatch.DiffEqual:
		}
	}

	entry.diff = dmp.DiffPrettyText(diffs)

	return entry, nil
}

// renderReport writes the drift report in the selected format.
func (cc *CheckCommand) renderReport(w io.Writer, entries []driftEntry) error {
	switch cc.format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(entries)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	case formatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

		_, writeErr := w.Write(data)
		if writeErr != nil {
			return fmt.Errorf("write report: %w", writeErr)
		}
	default:
		cc.renderText(w, entries)
	}

	return nil
}

func (cc *CheckCommand) renderText(w io.Writer, entries []driftEntry) {
	for _, entry := range entries {
		if entry.Status == driftUpToDate {
			color.New(color.FgGreen).Fprintf(w, "ok    %s\n", entry.Target)

			continue
		}

		color.New(color.FgRed).Fprintf(w, "%-5s %s (+%d -%d lines)\n",
			entry.Status, entry.Target, entry.AddedLines, entry.RemovedLines)

		if entry.diff != "" {
			fmt.Fprintln(w, entry.diff)
		}
	}
}

func filterTargets(targets []config.TargetConfig, name string) []config.TargetConfig {
	var matched []config.TargetConfig

	for _, target := range targets {
		if target.Name == name {
			matched = append(matched, target)
		}
	}

	return matched
}

// countLines counts the lines touched by a diff fragment. A fragment
// without a newline still touches one line.
func countLines(text string) int {
	return textutil.CountLines([]byte(text))
}
