package debughelpers

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
// Tests using it must not run in parallel.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return string(out)
}

//
// -----------------------------------------------------------------------------
// PrintDict
// -----------------------------------------------------------------------------

// TestPrintDict_Empty verifies an empty map prints a deterministic "{}".
func TestPrintDict_Empty(t *testing.T) {
	out := captureStdout(t, func() { PrintDict(map[string]int{}) })
	assert.Equal(t, "{}\n", out)

	again := captureStdout(t, func() { PrintDict(map[string]int{}) })
	assert.Equal(t, out, again)
}

// TestPrintDict_Nil verifies a nil map prints the same as an empty one.
func TestPrintDict_Nil(t *testing.T) {
	var m map[string]any
	out := captureStdout(t, func() { PrintDict(m) })
	assert.Equal(t, "{}\n", out)
}

// TestPrintDict_SingleEntry verifies the output contains both key and value.
func TestPrintDict_SingleEntry(t *testing.T) {
	out := captureStdout(t, func() { PrintDict(map[string]int{"a": 1}) })
	assert.Contains(t, out, `"a"`)
	assert.Contains(t, out, "1")
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out)
}

//
// -----------------------------------------------------------------------------
// FprintDict / SprintDict
// -----------------------------------------------------------------------------

// TestFprintDict_WritesToWriter verifies FprintDict renders to the given writer.
func TestFprintDict_WritesToWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FprintDict(&buf, map[string]string{"k": "v"}))
	assert.Equal(t, "{\n  \"k\": \"v\"\n}\n", buf.String())
}

// TestFprintDict_EmptyInEveryFormat verifies every built-in format renders an empty map as {}.
func TestFprintDict_EmptyInEveryFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{FormatPretty, FormatJSON, FormatYAML, FormatSpew} {
		format := format
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			var m map[string]int
			got, err := SprintDict(m, WithFormat(format))
			require.NoError(t, err)
			assert.Equal(t, "{}\n", got)
		})
	}
}

// TestSprintDict_Formats verifies each built-in format includes key and value.
func TestSprintDict_Formats(t *testing.T) {
	t.Parallel()

	m := map[string]int{"b": 2, "a": 1}

	tests := []struct {
		format string
		want   string
	}{
		{format: FormatPretty, want: "{\n  \"a\": 1,\n  \"b\": 2\n}\n"},
		{format: FormatJSON, want: "{\n  \"a\": 1,\n  \"b\": 2\n}\n"},
		{format: FormatYAML, want: "a: 1\nb: 2\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			got, err := SprintDict(m, WithFormat(tt.format))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run(FormatSpew, func(t *testing.T) {
		t.Parallel()

		got, err := SprintDict(m, WithFormat(FormatSpew))
		require.NoError(t, err)
		assert.Contains(t, got, `(string) (len=1) "a": (int) 1`)
		assert.Less(t, bytes.Index([]byte(got), []byte(`"a"`)), bytes.Index([]byte(got), []byte(`"b"`)))
	})
}

// TestSprintDict_UnknownFormat verifies unknown formats return ErrUnknownFormat.
func TestSprintDict_UnknownFormat(t *testing.T) {
	t.Parallel()

	got, err := SprintDict(map[string]int{"a": 1}, WithFormat("toml"))
	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	var ufe UnknownFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "toml", ufe.Name)
}

// TestSprintDict_JSONUnsupported verifies encoding errors are wrapped, not swallowed.
func TestSprintDict_JSONUnsupported(t *testing.T) {
	t.Parallel()

	_, err := SprintDict(map[string]any{"ch": make(chan int)}, WithFormat(FormatJSON))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debughelpers: json format")
}

// TestSprintDict_NilOptionsIgnored verifies nil options and a nil registry fall back to defaults.
func TestSprintDict_NilOptionsIgnored(t *testing.T) {
	t.Parallel()

	got, err := SprintDict(map[string]int{"a": 1}, nil, WithRegistry(nil))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", got)
}

// TestSprintDict_CustomRegistry verifies WithRegistry resolves formats from the given registry.
func TestSprintDict_CustomRegistry(t *testing.T) {
	t.Parallel()

	reg := NewFormatRegistry().Provide("count", FormatterFunc(func(w io.Writer, v any) error {
		_, err := io.WriteString(w, "entries\n")
		return err
	}))

	got, err := SprintDict(map[string]int{"a": 1}, WithRegistry(reg), WithFormat("count"))
	require.NoError(t, err)
	assert.Equal(t, "entries\n", got)

	_, err = SprintDict(map[string]int{"a": 1}, WithFormat("count"))
	assert.ErrorIs(t, err, ErrUnknownFormat, "built-in registry must be untouched")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }

// TestFprintDict_WriteError verifies writer errors are returned.
func TestFprintDict_WriteError(t *testing.T) {
	t.Parallel()

	err := FprintDict(failingWriter{}, map[string]int{"a": 1})
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}
