// SPDX-License-Identifier: MIT

// Package tableutil builds the tab-aligned writers used for CLI output.
package tableutil

import (
	"fmt"
	"io"

	"github.com/liggitt/tabwriter"
)

// New creates a tabwriter with testapp's default spacing settings.
func New(out io.Writer, stripEscape bool) *tabwriter.Writer {
	var flags uint
	if stripEscape {
		flags = tabwriter.StripEscape
	}
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', flags)
}

// Println writes one line through a fresh writer and flushes it, so escaped
// sequences are stripped without buffering past the call.
func Println(out io.Writer, stripEscape bool, line string) error {
	w := New(out, stripEscape)
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	return w.Flush()
}
