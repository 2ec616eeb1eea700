package debughelpers

import (
	"io"
	"os"
	"strings"
)

// Option configures FprintDict, SprintDict and DiffDict.
type Option func(*options)

type options struct {
	format   string
	registry *FormatRegistry
}

// WithFormat selects the format used for rendering. Defaults to FormatPretty.
func WithFormat(name string) Option {
	return func(o *options) { o.format = name }
}

// WithRegistry resolves formats from r instead of the built-in registry.
// A nil registry is ignored.
func WithRegistry(r *FormatRegistry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{format: FormatPretty, registry: builtin}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// PrintDict writes a readable rendering of m to standard output.
//
// Keys are printed in a deterministic order; an empty or nil map prints "{}".
func PrintDict[K comparable, V any](m map[K]V) {
	_ = FprintDict(os.Stdout, m)
}

// FprintDict writes the rendering of m to w.
//
// A nil map is rendered as an empty one in every format.
func FprintDict[K comparable, V any](w io.Writer, m map[K]V, opts ...Option) error {
	if m == nil {
		m = map[K]V{}
	}
	o := buildOptions(opts)
	return o.registry.Render(w, o.format, m)
}

// SprintDict returns the rendering of m.
func SprintDict[K comparable, V any](m map[K]V, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := FprintDict(&sb, m, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}
