// SPDX-License-Identifier: MIT

// Package greeting renders the line testapp prints on startup.
package greeting

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/skaphos/testapp/internal/tableutil"
	"github.com/skaphos/testapp/internal/termstyle"
)

const (
	// DefaultName is the application name used when none is configured.
	DefaultName = "testapp"
	// Expected is the exact greeting for DefaultName.
	Expected = "Hello from " + DefaultName + "!"
)

// Message returns the greeting for name, falling back to DefaultName.
func Message(name string) string {
	return "Hello from " + normalizeName(name) + "!"
}

// ValidateName rejects names that cannot be printed verbatim: invalid UTF-8
// and control characters such as tabs or newlines.
func ValidateName(name string) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("greeting name %q is not valid UTF-8", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("greeting name %q contains control character %U", name, r)
		}
	}
	return nil
}

// WriteDefault prints the fixed greeting line for DefaultName.
func WriteDefault(w io.Writer) error {
	_, err := fmt.Fprintln(w, Expected)
	return err
}

// Write prints the greeting line for name to w, coloring the name when color
// is enabled.
func Write(w io.Writer, name string, color bool) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if !color {
		_, err := fmt.Fprintln(w, Message(name))
		return err
	}
	// Names are free of control characters, so the tabwriter only strips the
	// color escape markers.
	line := "Hello from " + termstyle.Colorize(true, normalizeName(name), termstyle.Name) + "!"
	return tableutil.Println(w, true, line)
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}
