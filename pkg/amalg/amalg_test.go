package amalg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/amalgam/pkg/lang"
)

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir
}

func TestRun_TwoFileScenario(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"a.cs": "using System;\nnamespace Foo\n{\nclass A {}\n}\n",
		"b.cs": "using System;\nusing System.Linq;\nnamespace Foo\n{\nclass B {}\n}\n",
	})

	output := filepath.Join(dir, "out", "Merged.cs")
	require.NoError(t, os.Mkdir(filepath.Dir(output), 0o755))

	result, err := New(Job{
		Pattern:   filepath.Join(dir, "*.cs"),
		Output:    output,
		Namespace: "Foo",
		Language:  lang.ProfileCSharp,
	}, nil).Run()
	require.NoError(t, err)

	assert.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.Imports)
	assert.Equal(t, 2, result.BodyLines)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	want := "using System.Linq;\n" +
		"using System;\n" +
		"\n" +
		"namespace Foo\n" +
		"{\n" +
		"class A {}\n" +
		"class B {}\n" +
		"}\n"
	assert.Equal(t, want, string(data))
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"a.cs": "using System;\nnamespace Foo\n{\nclass A {}\n}\n",
		"b.cs": "using B;\nnamespace Foo\n{\nclass B {}\n}\n",
	})

	output := filepath.Join(dir, "Merged.cs")
	job := Job{
		Pattern:   filepath.Join(dir, "[ab].cs"),
		Output:    output,
		Namespace: "Foo",
		Language:  lang.ProfileCSharp,
	}

	_, err := New(job, nil).Run()
	require.NoError(t, err)

	first, err := os.ReadFile(output)
	require.NoError(t, err)

	_, err = New(job, nil).Run()
	require.NoError(t, err)

	second, err := os.ReadFile(output)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuild_SortedEnumerationOrder(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"c.cs": "class C {}\n",
		"a.cs": "class A {}\n",
		"b.cs": "class B {}\n",
	})

	result, err := New(Job{
		Pattern:   filepath.Join(dir, "*.cs"),
		Output:    filepath.Join(dir, "Merged.cs"),
		Namespace: "Foo",
		Language:  lang.ProfileCSharp,
	}, nil).Build()
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, "a.cs", filepath.Base(result.Files[0]))
	assert.Equal(t, "b.cs", filepath.Base(result.Files[1]))
	assert.Equal(t, "c.cs", filepath.Base(result.Files[2]))
}

func TestBuild_EmptyInputDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	result, err := New(Job{
		Pattern:   filepath.Join(dir, "*.cs"),
		Output:    filepath.Join(dir, "Merged.cs"),
		Namespace: "Foo",
		Language:  lang.ProfileCSharp,
	}, nil).Build()
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.Equal(t, "\nnamespace Foo\n{\n}\n", string(result.Output))
}

func TestBuild_StripsBOM(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"a.cs": "\xEF\xBB\xBFusing System;\nclass A {}\n",
	})

	result, err := New(Job{
		Pattern:   filepath.Join(dir, "*.cs"),
		Output:    filepath.Join(dir, "Merged.cs"),
		Namespace: "Foo",
		Language:  lang.ProfileCSharp,
	}, nil).Build()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imports)
	assert.NotContains(t, string(result.Output), "\xEF\xBB\xBF")
	assert.Contains(t, string(result.Output), "using System;\n")
}

func TestBuild_LicenseFromFile(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"a.cs": "class A {}\n",
	})
	licensePath := filepath.Join(dir, "LICENSE")
	require.NoError(t, os.WriteFile(licensePath, []byte("Copyright (c) 2012\n"), 0o644))

	result, err := New(Job{
		Pattern:     filepath.Join(dir, "*.cs"),
		Output:      filepath.Join(dir, "Merged.cs"),
		Namespace:   "Foo",
		Language:    lang.ProfileCSharp,
		LicenseFile: licensePath,
		WrapLicense: true,
	}, nil).Build()
	require.NoError(t, err)

	want := "/*\n\nCopyright (c) 2012\n\n*/\n" +
		"\n" +
		"\n" +
		"namespace Foo\n{\nclass A {}\n}\n"
	assert.Equal(t, want, string(result.Output))
}

func TestBuild_InlineLicenseText(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"a.cs": "class A {}\n",
	})

	result, err := New(Job{
		Pattern:     filepath.Join(dir, "*.cs"),
		Output:      filepath.Join(dir, "Merged.cs"),
		Namespace:   "Foo",
		Language:    lang.ProfileCSharp,
		LicenseText: "/* preformatted */\n",
	}, nil).Build()
	require.NoError(t, err)

	assert.Contains(t, string(result.Output), "/* preformatted */\n")
}

func TestRun_MissingLicenseLeavesNoOutput(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"a.cs": "class A {}\n",
	})
	output := filepath.Join(dir, "Merged.cs")

	_, err := New(Job{
		Pattern:     filepath.Join(dir, "*.cs"),
		Output:      output,
		Namespace:   "Foo",
		Language:    lang.ProfileCSharp,
		LicenseFile: filepath.Join(dir, "no-such-license"),
	}, nil).Run()

	require.Error(t, err)
	assert.NoFileExists(t, output)
}

func TestRun_OverwritesPreviousOutput(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"a.cs": "class A {}\n",
	})
	output := filepath.Join(dir, "Merged.cs")
	require.NoError(t, os.WriteFile(output, []byte("stale"), 0o644))

	_, err := New(Job{
		Pattern:   filepath.Join(dir, "a.cs"),
		Output:    output,
		Namespace: "Foo",
		Language:  lang.ProfileCSharp,
	}, nil).Run()
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}

func TestBuild_BinaryInputRejected(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"a.cs": "class A {}\x00\n",
	})

	_, err := New(Job{
		Pattern:   filepath.Join(dir, "*.cs"),
		Output:    filepath.Join(dir, "Merged.cs"),
		Namespace: "Foo",
		Language:  lang.ProfileCSharp,
	}, nil).Build()

	require.ErrorIs(t, err, ErrBinaryInput)
}

func TestBuild_UnknownLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := New(Job{
		Pattern:   filepath.Join(dir, "*.cs"),
		Output:    filepath.Join(dir, "Merged.cs"),
		Namespace: "Foo",
		Language:  "cobol",
	}, nil).Build()

	require.ErrorIs(t, err, lang.ErrUnknownProfile)
}

func TestBuild_DetectsProfileFromFirstFile(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"a.cpp": "#include <vector>\nnamespace foo\n{\nint x;\n}\n",
	})

	result, err := New(Job{
		Pattern:   filepath.Join(dir, "*.cpp"),
		Output:    filepath.Join(dir, "merged.cpp"),
		Namespace: "foo",
	}, nil).Build()
	require.NoError(t, err)

	assert.Equal(t, lang.ProfileCpp, result.Profile)
	assert.Equal(t, 1, result.Imports)
}

func TestBuild_PartialLastLineDoesNotGlueToCloser(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"a.cs": "class A {}",
	})

	result, err := New(Job{
		Pattern:   filepath.Join(dir, "*.cs"),
		Output:    filepath.Join(dir, "Merged.cs"),
		Namespace: "Foo",
		Language:  lang.ProfileCSharp,
	}, nil).Build()
	require.NoError(t, err)

	assert.Contains(t, string(result.Output), "class A {}\n}\n")
}
