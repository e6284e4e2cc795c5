// SPDX-License-Identifier: MIT
package testapp

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/skaphos/testapp/internal/capture"
	"github.com/skaphos/testapp/internal/config"
	"github.com/skaphos/testapp/internal/greeting"
	"github.com/skaphos/testapp/internal/tableutil"
	"github.com/skaphos/testapp/internal/termstyle"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Capture the greeting and check it against the expected text",
	Long:  "Runs the greeting under stdout capture, trims surrounding whitespace and compares the result with --expect. Exits 2 on mismatch. With --configured the greet subcommand's output is checked instead of the default greeting.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		expect, _ := cmd.Flags().GetString("expect")
		repeat, _ := cmd.Flags().GetInt("repeat")
		configured, _ := cmd.Flags().GetBool("configured")
		if repeat < 1 {
			return fmt.Errorf("--repeat must be at least 1, got %d", repeat)
		}

		routine := greeting.WriteDefault
		var cfg *config.Config
		if configured {
			// Loaded before capturing so diagnostics reach the real stderr.
			var err error
			if cfg, err = greetConfig(cmd); err != nil {
				return err
			}
			routine = func(out io.Writer) error { return writeConfiguredGreeting(out, cfg) }
		}

		first, err := verifyOnce(routine, expect)
		if err != nil {
			return reportMismatch(cmd, cfg, err)
		}
		for i := 2; i <= repeat; i++ {
			out, err := verifyOnce(routine, expect)
			if err != nil {
				return reportMismatch(cmd, cfg, err)
			}
			if err := capture.Match(first.TrimmedStdout(), out); err != nil {
				return reportMismatch(cmd, cfg, fmt.Errorf("capture %d differs from capture 1: %w", i, err))
			}
		}

		debugf(cmd, "verified %d capture(s)", repeat)
		out := cmd.OutOrStdout()
		return tableutil.Println(out, true, termstyle.Colorize(shouldUseColorOutput(out, cfg), "ok", termstyle.OK))
	},
}

func init() {
	verifyCmd.Flags().String("expect", greeting.Expected, "expected greeting after trimming whitespace")
	verifyCmd.Flags().Int("repeat", 1, "number of independent captures that must agree")
	verifyCmd.Flags().Bool("configured", false, "verify the greet subcommand output (config and --name) instead of the default greeting")
	verifyCmd.Flags().String("name", "", "with --configured, application name used in the greeting")

	rootCmd.AddCommand(verifyCmd)
}

// verifyOnce captures one run of routine and matches it against expect.
func verifyOnce(routine func(io.Writer) error, expect string) (capture.Output, error) {
	var writeErr error
	out, err := capture.Run(func() {
		// os.Stdout is the capture pipe only while this runs.
		writeErr = routine(os.Stdout)
	})
	if err != nil {
		return out, err
	}
	if writeErr != nil {
		return out, writeErr
	}
	return out, capture.Match(expect, out)
}

// reportMismatch prints assertion failures and raises the exit code; any
// other error is returned to cobra.
func reportMismatch(cmd *cobra.Command, cfg *config.Config, err error) error {
	var mismatch *capture.MismatchError
	if !errors.As(err, &mismatch) {
		return err
	}
	raiseExitCode(2)
	out := cmd.ErrOrStderr()
	if werr := tableutil.Println(out, true, termstyle.Colorize(shouldUseColorOutput(out, cfg), "FAIL", termstyle.Fail)); werr != nil {
		return werr
	}
	// The diff contains tabs, so it bypasses the tabwriter.
	_, werr := fmt.Fprintln(out, err.Error())
	return werr
}
