package amalg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sumatoshi-tech/amalgam/pkg/lang"
	"github.com/Sumatoshi-tech/amalgam/pkg/safeio"
	"github.com/Sumatoshi-tech/amalgam/pkg/textutil"
)

// Sentinel errors for amalgamation failures.
var (
	// ErrBinaryInput indicates a matched input file failed the null-byte
	// sniff and cannot be merged as text.
	ErrBinaryInput = errors.New("binary input file")

	// ErrBadPattern indicates the input glob pattern is malformed.
	ErrBadPattern = errors.New("bad glob pattern")
)

// Job describes one amalgamation target: what to read, what to write,
// and how to head the output.
type Job struct {
	// Pattern is the glob identifying input files.
	Pattern string

	// Output is the path the amalgamated file is written to.
	Output string

	// Namespace names the synthetic wrapper all body lines are merged
	// under.
	Namespace string

	// Language selects a profile by ID. Empty means detect from the
	// first matched file.
	Language string

	// LicenseFile, when set, is read and emitted as the output header.
	// Mutually exclusive with LicenseText.
	LicenseFile string

	// LicenseText, when set, is emitted verbatim as the output header.
	LicenseText string

	// WrapLicense wraps the license content in the profile's block
	// comment delimiters.
	WrapLicense bool
}

// Result summarizes one completed build.
type Result struct {
	// Files are the matched input paths, in the processed (sorted) order.
	Files []string

	// Imports is the number of distinct import directives emitted.
	Imports int

	// BodyLines is the number of body lines emitted.
	BodyLines int

	// Profile is the ID of the language profile used.
	Profile string

	// Output is the rendered document.
	Output []byte
}

// Amalgamator runs one job. Fully sequential: each input is read whole
// and released before the next.
type Amalgamator struct {
	job    Job
	logger *slog.Logger
}

// New returns an amalgamator for the job. A nil logger defaults to
// [slog.Default].
func New(job Job, logger *slog.Logger) *Amalgamator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Amalgamator{job: job, logger: logger}
}

// Build renders the amalgamated document in memory without touching the
// output path. All input errors, including a missing configured license
// file, surface here — before anything is written.
func (a *Amalgamator) Build() (*Result, error) {
	paths, err := a.enumerate()
	if err != nil {
		return nil, err
	}

	files, err := a.readAll(paths)
	if err != nil {
		return nil, err
	}

	profile, err := a.resolveProfile(files)
	if err != nil {
		return nil, err
	}

	license, err := a.loadLicense(profile)
	if err != nil {
		return nil, err
	}

	merged := Merge(NewTokenizer(profile), files)

	a.logger.Debug("merged inputs",
		"files", merged.FileCount,
		"imports", merged.ImportCount(),
		"body_lines", len(merged.Body))

	doc := NewDocument(profile, a.job.Namespace, license, merged)

	return &Result{
		Files:     paths,
		Imports:   merged.ImportCount(),
		BodyLines: len(merged.Body),
		Profile:   profile.ID,
		Output:    doc.Render(),
	}, nil
}

// Run builds the document and writes it atomically to the job's output
// path, replacing any previous content.
func (a *Amalgamator) Run() (*Result, error) {
	result, err := a.Build()
	if err != nil {
		return nil, err
	}

	writeErr := safeio.WriteFileAtomic(a.job.Output, result.Output)
	if writeErr != nil {
		return nil, fmt.Errorf("write %s: %w", a.job.Output, writeErr)
	}

	a.logger.Info("amalgamated",
		"output", a.job.Output,
		"files", len(result.Files),
		"bytes", len(result.Output))

	return result, nil
}

// enumerate matches the glob and sorts the paths lexicographically.
// Directory listings are unordered on some filesystems; sorting makes
// output order a contract instead of an accident.
func (a *Amalgamator) enumerate() ([]string, error) {
	paths, err := filepath.Glob(a.job.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, a.job.Pattern)
	}

	sort.Strings(paths)

	return paths, nil
}

// readAll reads and decodes every input, stripping BOMs and rejecting
// binary content.
func (a *Amalgamator) readAll(paths []string) ([]SourceFile, error) {
	files := make([]SourceFile, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}

		if textutil.IsBinary(data) {
			return nil, fmt.Errorf("%w: %s", ErrBinaryInput, path)
		}

		a.logger.Debug("read input", "path", path, "lines", textutil.CountLines(data))

		files = append(files, SourceFile{
			Path:  path,
			Lines: textutil.SplitLines(textutil.StripBOM(data)),
		})
	}

	return files, nil
}

// resolveProfile picks the language profile: explicit config wins, then
// detection on the first matched file, then the default.
func (a *Amalgamator) resolveProfile(files []SourceFile) (lang.Profile, error) {
	if a.job.Language != "" {
		profile, err := lang.Lookup(a.job.Language)
		if err != nil {
			return lang.Profile{}, err
		}

		return profile, nil
	}

	if len(files) > 0 {
		first := files[0]

		return lang.Detect(first.Path, []byte(strings.Join(first.Lines, ""))), nil
	}

	return lang.Lookup(lang.DefaultProfile)
}

// loadLicense resolves the header block from the job's license file or
// inline text. Returns "" when no license is configured.
func (a *Amalgamator) loadLicense(profile lang.Profile) (string, error) {
	text := a.job.LicenseText

	if a.job.LicenseFile != "" {
		data, err := os.ReadFile(a.job.LicenseFile)
		if err != nil {
			return "", fmt.Errorf("read license: %w", err)
		}

		text = string(textutil.StripBOM(data))
	}

	if text == "" {
		return "", nil
	}

	if a.job.WrapLicense {
		text = profile.CommentOpen + "\n\n" + ensureNewline(text) + "\n" + profile.CommentClose + "\n"
	}

	return text, nil
}
