// SPDX-License-Identifier: MIT

// Package termstyle wraps terminal text in ANSI color sequences.
package termstyle

import "github.com/liggitt/tabwriter"

const (
	Reset = "\x1b[0m"
	Green = "\x1b[32m"
	Red   = "\x1b[31m"
	Cyan  = "\x1b[36m"

	// Semantic aliases used by greeting and verify output.
	Name = Cyan
	OK   = Green
	Fail = Red
)

// Colorize wraps a value in escaped ANSI sequences when enabled. The escape
// markers are removed by a tableutil writer created with stripEscape set.
func Colorize(enabled bool, value, color string) string {
	if !enabled || value == "" || color == "" {
		return value
	}
	esc := string([]byte{tabwriter.Escape})
	return esc + color + esc + value + esc + Reset + esc
}
