package debughelpers

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

// DiffDict renders a and b with the selected format and returns a unified
// diff between the two renderings ("--- a" / "+++ b").
//
// The result is empty when both renderings are identical.
func DiffDict[K comparable, V any](a, b map[K]V, opts ...Option) (string, error) {
	ra, err := SprintDict(a, opts...)
	if err != nil {
		return "", fmt.Errorf("debughelpers: render a: %w", err)
	}
	rb, err := SprintDict(b, opts...)
	if err != nil {
		return "", fmt.Errorf("debughelpers: render b: %w", err)
	}
	if ra == rb {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(ra),
		B:        difflib.SplitLines(rb),
		FromFile: "a",
		ToFile:   "b",
		Context:  diffContext,
	})
}
