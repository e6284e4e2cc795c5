// SPDX-License-Identifier: MIT

// Package testapp contains the Cobra command tree for the testapp CLI.
package testapp

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skaphos/testapp/internal/config"
	"github.com/skaphos/testapp/internal/greeting"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var (
	// Global flags
	flagVerbose int
	flagQuiet   bool
	flagConfig  string
	flagNoColor bool
	// exitCode tracks the highest severity observed during a command run.
	exitCode int
	// isTerminalFD is overridable in tests.
	isTerminalFD = term.IsTerminal
	// exitFunc is overridable in tests.
	exitFunc = os.Exit
)

var rootCmd = &cobra.Command{
	Use:           "testapp",
	Short:         "Print a greeting",
	Long:          "testapp prints \"Hello from testapp!\" to standard output. The greet subcommand prints a configured greeting and verify captures a greeting and checks it against the expected text.",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// `NO_COLOR` is a standard opt-out and should behave like --no-color.
		if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
			flagNoColor = true
		}
	},
	// The entry routine reads no config and never colors, so its output is
	// the same in every environment.
	RunE: func(cmd *cobra.Command, _ []string) error {
		return greeting.WriteDefault(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase output verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "override config file path")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() {
	exitFunc(ExecuteWithExitCode())
}

// ExecuteWithExitCode runs the root command and returns a shell-friendly exit code.
func ExecuteWithExitCode() int {
	exitCode = 0
	resetFlags(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 3
	}
	return exitCode
}

// Run executes the root command with explicit args and returns its exit code.
func Run(args []string) int {
	if args == nil {
		// Cobra falls back to os.Args for nil.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	return ExecuteWithExitCode()
}

// resetFlags restores every flag in the tree to its default. Cobra keeps
// parsed values between executions otherwise.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func raiseExitCode(code int) {
	// Keep the highest severity: 0 success, 1 warning, 2 error, 3 fatal.
	if code > exitCode {
		exitCode = code
	}
}

func infof(cmd *cobra.Command, format string, args ...any) {
	if flagQuiet {
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

func debugf(cmd *cobra.Command, format string, args ...any) {
	if flagQuiet || flagVerbose <= 0 {
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit := config.Explicit(flagConfig)
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, err := config.ResolveConfigPath(flagConfig, cwd)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("resolve config: %w", err)
		}
		debugf(cmd, "no config location available (%v); using defaults", err)
		def := config.DefaultConfig()
		return &def, nil
	}
	cfg, err := config.LoadOrDefault(path, explicit)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	debugf(cmd, "using config %s", path)
	return cfg, nil
}

// shouldUseColorOutput reports whether out is a terminal and neither flags nor
// cfg disable color. A nil cfg only consults flags.
func shouldUseColorOutput(out io.Writer, cfg *config.Config) bool {
	if flagNoColor || !cfg.ColorEnabled() {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isTerminalFD(int(file.Fd()))
}
