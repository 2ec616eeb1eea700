package debughelpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

// Built-in format names.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatSpew   = "spew"
)

var (
	// ErrUnknownFormat is matched (via errors.Is) by UnknownFormatError.
	ErrUnknownFormat = errors.New("debughelpers: unknown format")

	// ErrNilFormatter is returned when a registered formatter is nil.
	ErrNilFormatter = errors.New("debughelpers: nil formatter")

	// ErrFormatterPanic is returned if a formatter panics while rendering.
	ErrFormatterPanic = errors.New("debughelpers: panic during Format")
)

// UnknownFormatError is returned when a format name is not registered.
type UnknownFormatError struct{ Name string }

// Error implements the error interface.
func (e UnknownFormatError) Error() string {
	// Example: debughelpers: unknown format "toml"
	return "debughelpers: unknown format " + strconv.Quote(e.Name)
}

// Is reports whether target is ErrUnknownFormat.
func (e UnknownFormatError) Is(target error) bool { return target == ErrUnknownFormat }

// Formatter renders a value to w.
type Formatter interface {
	Format(w io.Writer, v any) error
}

// FormatterFunc adapts a plain function to Formatter.
type FormatterFunc func(w io.Writer, v any) error

// Format implements Formatter.
func (f FormatterFunc) Format(w io.Writer, v any) error { return f(w, v) }

// FormatRegistry maps format names to formatters.
//
// It is safe for concurrent use.
type FormatRegistry struct {
	mu    sync.RWMutex
	items map[string]Formatter
}

// builtin is the registry used when no WithRegistry option is given.
// It is never mutated after initialisation.
var builtin = NewFormatRegistry()

// NewFormatRegistry returns a registry holding the built-in formats.
func NewFormatRegistry() *FormatRegistry {
	return &FormatRegistry{items: map[string]Formatter{
		FormatPretty: FormatterFunc(formatPretty),
		FormatJSON:   FormatterFunc(formatJSON),
		FormatYAML:   FormatterFunc(formatYAML),
		FormatSpew:   FormatterFunc(formatSpew),
	}}
}

// Provide stores a formatter under name and returns the registry for chaining.
// An existing entry with the same name is replaced.
func (r *FormatRegistry) Provide(name string, f Formatter) *FormatRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = map[string]Formatter{}
	}
	r.items[name] = f
	return r
}

// Get returns the formatter registered under name.
func (r *FormatRegistry) Get(name string) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.items[name]
	return f, ok
}

// MustGet returns the formatter or panics with a helpful message.
func (r *FormatRegistry) MustGet(name string) Formatter {
	f, ok := r.Get(name)
	if !ok {
		panic(UnknownFormatError{Name: name})
	}
	return f
}

// Names returns the registered format names in sorted order.
func (r *FormatRegistry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Render resolves name and formats v to w.
//
// Panics raised by the formatter are converted into errors wrapping ErrFormatterPanic.
func (r *FormatRegistry) Render(w io.Writer, name string, v any) (err error) {
	f, ok := r.Get(name)
	if !ok {
		return UnknownFormatError{Name: name}
	}
	if f == nil {
		return ErrNilFormatter
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s: %v", ErrFormatterPanic, name, rec)
		}
	}()
	return f.Format(w, v)
}

func formatJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("debughelpers: json format: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func formatYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("debughelpers: yaml format: %w", err)
	}
	return enc.Close()
}

// spewConfig hides addresses and capacities so dumps are stable between runs.
var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// formatSpew dumps v with go-spew. Empty maps are written as "{}" so every
// built-in format agrees on the empty case.
func formatSpew(w io.Writer, v any) error {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Map && rv.Len() == 0 {
		_, err := io.WriteString(w, "{}\n")
		return err
	}
	spewConfig.Fdump(w, v)
	return nil
}
