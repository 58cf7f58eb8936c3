package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func builtFixture(t *testing.T) (string, string) {
	t.Helper()

	dir := writeSources(t)
	manifest := writeManifest(t, dir)

	_, _, err := execute(t, NewBuildCommand, "-c", manifest, "--silent", "--no-color")
	require.NoError(t, err)

	return dir, manifest
}

func TestCheckCommand_UpToDate(t *testing.T) {
	t.Parallel()

	_, manifest := builtFixture(t)

	out, _, err := execute(t, NewCheckCommand, "-c", manifest, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "foo")
}

func TestCheckCommand_StaleAfterInputChange(t *testing.T) {
	t.Parallel()

	dir, manifest := builtFixture(t)

	newInput := filepath.Join(dir, "src", "c.cs")
	require.NoError(t, os.WriteFile(newInput, []byte("class C {}\n"), 0o644))

	out, _, err := execute(t, NewCheckCommand, "-c", manifest, "--no-color")

	require.ErrorIs(t, err, ErrDrift)
	assert.Contains(t, out, "stale")
}

func TestCheckCommand_MissingOutput(t *testing.T) {
	t.Parallel()

	dir, manifest := builtFixture(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "Merged.cs")))

	out, _, err := execute(t, NewCheckCommand, "-c", manifest, "--no-color")

	require.ErrorIs(t, err, ErrDrift)
	assert.Contains(t, out, "missing")
}

func TestCheckCommand_JSONFormat(t *testing.T) {
	t.Parallel()

	_, manifest := builtFixture(t)

	out, _, err := execute(t, NewCheckCommand, "-c", manifest, "--format", "json")
	require.NoError(t, err)

	var entries []map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "foo", entries[0]["target"])
	assert.Equal(t, "up-to-date", entries[0]["status"])
}

func TestCheckCommand_YAMLFormat(t *testing.T) {
	t.Parallel()

	dir, manifest := builtFixture(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "Merged.cs")))

	out, _, err := execute(t, NewCheckCommand, "-c", manifest, "--format", "yaml")
	require.ErrorIs(t, err, ErrDrift)

	var entries []map[string]any

	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "missing", entries[0]["status"])
}

func TestCheckCommand_BadFormat(t *testing.T) {
	t.Parallel()

	_, manifest := builtFixture(t)

	_, _, err := execute(t, NewCheckCommand, "-c", manifest, "--format", "xml")

	require.ErrorIs(t, err, ErrBadFormat)
}

func TestCheckCommand_TargetSelector(t *testing.T) {
	t.Parallel()

	_, manifest := builtFixture(t)

	_, _, err := execute(t, NewCheckCommand, "-c", manifest, "-t", "nope")

	require.ErrorIs(t, err, ErrTargetNotFound)
}
