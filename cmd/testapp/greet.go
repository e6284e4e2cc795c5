// SPDX-License-Identifier: MIT
package testapp

import (
	"io"

	"github.com/skaphos/testapp/internal/config"
	"github.com/skaphos/testapp/internal/greeting"
	"github.com/spf13/cobra"
)

var greetCmd = &cobra.Command{
	Use:   "greet",
	Short: "Print the greeting using the resolved config",
	Long:  "Prints the greeting with the name from --name or the resolved config file. The name is colored when stdout is a terminal and color is enabled.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := greetConfig(cmd)
		if err != nil {
			return err
		}
		return writeConfiguredGreeting(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	greetCmd.Flags().String("name", "", "application name used in the greeting (overrides config)")

	rootCmd.AddCommand(greetCmd)
}

// greetConfig loads the config and applies a --name override when cmd has one.
func greetConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("name"); f != nil && f.Changed {
		if err := greeting.ValidateName(f.Value.String()); err != nil {
			return nil, err
		}
		cfg.Greeting.Name = f.Value.String()
	}
	return cfg, nil
}

func writeConfiguredGreeting(out io.Writer, cfg *config.Config) error {
	return greeting.Write(out, cfg.Greeting.Name, shouldUseColorOutput(out, cfg))
}
