// SPDX-License-Identifier: MIT

// Package capture runs a function while intercepting everything it writes to
// the process standard output and standard error streams.
package capture

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output holds the text written to each stream during one captured call.
type Output struct {
	Stdout string
	Stderr string
}

// TrimmedStdout returns Stdout without leading or trailing whitespace.
func (o Output) TrimmedStdout() string {
	return strings.TrimSpace(o.Stdout)
}

// Run invokes fn exactly once with os.Stdout and os.Stderr redirected into
// pipes and returns what fn wrote. The original streams are restored before
// Run returns, including when fn panics; the panic is not recovered.
//
// The streams are process-global. Nested calls restore in stack order, but
// Run must not be called concurrently from different goroutines.
func Run(fn func()) (Output, error) {
	stdout, err := redirect(&os.Stdout)
	if err != nil {
		return Output{}, fmt.Errorf("capture stdout: %w", err)
	}
	stderr, err := redirect(&os.Stderr)
	if err != nil {
		_, _ = stdout.finish()
		return Output{}, fmt.Errorf("capture stderr: %w", err)
	}

	completed := false
	defer func() {
		if completed {
			return
		}
		// fn panicked: put the streams back and let the panic continue.
		_, _ = stderr.finish()
		_, _ = stdout.finish()
	}()

	fn()
	completed = true

	errText, errErr := stderr.finish()
	outText, outErr := stdout.finish()
	if outErr != nil {
		return Output{}, fmt.Errorf("read captured stdout: %w", outErr)
	}
	if errErr != nil {
		return Output{}, fmt.Errorf("read captured stderr: %w", errErr)
	}
	return Output{Stdout: outText, Stderr: errText}, nil
}

type redirection struct {
	target   **os.File
	original *os.File
	reader   *os.File
	writer   *os.File
	buf      bytes.Buffer
	done     chan error
}

func redirect(target **os.File) (*redirection, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	rd := &redirection{
		target:   target,
		original: *target,
		reader:   r,
		writer:   w,
		done:     make(chan error, 1),
	}
	// Drain while fn runs so output larger than the pipe buffer cannot block it.
	go func() {
		_, copyErr := io.Copy(&rd.buf, r)
		rd.done <- copyErr
	}()
	*target = w
	return rd, nil
}

// finish restores the original stream and returns everything drained from the pipe.
func (r *redirection) finish() (string, error) {
	*r.target = r.original
	closeErr := r.writer.Close()
	copyErr := <-r.done
	_ = r.reader.Close()
	if copyErr != nil {
		return "", copyErr
	}
	if closeErr != nil {
		return "", closeErr
	}
	return r.buf.String(), nil
}
