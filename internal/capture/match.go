// SPDX-License-Identifier: MIT
package capture

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// MismatchError reports captured stdout that did not equal the expected text.
type MismatchError struct {
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("captured output mismatch: expected %q, got %q (-expected +actual):\n%s",
		e.Expected, e.Actual, cmp.Diff(e.Expected, e.Actual))
}

// Match compares the trimmed stdout of out against expected. The comparison
// is exact apart from surrounding whitespace.
func Match(expected string, out Output) error {
	actual := out.TrimmedStdout()
	if actual != expected {
		return &MismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// RunAndMatch captures fn and matches its stdout against expected.
func RunAndMatch(fn func(), expected string) (Output, error) {
	out, err := Run(fn)
	if err != nil {
		return out, err
	}
	return out, Match(expected, out)
}
