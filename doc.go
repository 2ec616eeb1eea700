// Package debughelpers provides a few small helpers for poking at values
// while debugging Go code.
//
// The surface is intentionally tiny:
//
//   - Hello: a greeting formatter ("Hello, <name>!")
//   - Add: integer addition
//   - PrintDict / FprintDict / SprintDict: readable, deterministic rendering of maps
//   - DiffDict: unified diff between the renderings of two maps
//
// Maps can be rendered in several formats. The default ("pretty") has no
// dependencies beyond the standard library and sorts keys so output is stable
// across runs. The "json", "yaml" and "spew" formats are backed by
// encoding/json, gopkg.in/yaml.v3 and github.com/davecgh/go-spew.
//
// Custom formats are plugged in through a FormatRegistry:
//
//	reg := debughelpers.NewFormatRegistry().
//		Provide("keys", debughelpers.FormatterFunc(func(w io.Writer, v any) error {
//			_, err := fmt.Fprintf(w, "%d keys\n", reflect.ValueOf(v).Len())
//			return err
//		}))
//
//	err := debughelpers.FprintDict(os.Stderr, m,
//		debughelpers.WithRegistry(reg),
//		debughelpers.WithFormat("keys"),
//	)
//
// A runnable example lives under examples/basic.
//
// Import
//
//	"github.com/sghaida/debughelpers"
package debughelpers
