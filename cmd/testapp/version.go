// SPDX-License-Identifier: MIT
package testapp

import (
	"fmt"
	"runtime"

	"github.com/skaphos/testapp/internal/cliio"
	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "testapp %s\n", Version); err != nil {
			return err
		}
		return cliio.WriteTable(out, false, true, nil, [][]string{
			{"  commit:", Commit},
			{"  built:", Date},
			{"  go:", runtime.Version()},
			{"  os/arch:", runtime.GOOS + "/" + runtime.GOARCH},
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
