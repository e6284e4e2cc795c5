// SPDX-License-Identifier: MIT
package testapp

import (
	"fmt"
	"os"

	"github.com/skaphos/testapp/internal/cliio"
	"github.com/skaphos/testapp/internal/config"
	"github.com/skaphos/testapp/internal/greeting"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default testapp configuration",
	Long:  "Creates a testapp config file in the current directory by default.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		interactive, _ := cmd.Flags().GetBool("interactive")
		name, _ := cmd.Flags().GetString("name")
		if err := greeting.ValidateName(name); err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		cfgPath, err := config.InitConfigPath(flagConfig, cwd)
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfgPath); err == nil {
			if !force && interactive {
				prompt := fmt.Sprintf("Config already exists at %s. Overwrite? [y/N]: ", cfgPath)
				force, err = cliio.PromptYesNo(cmd.ErrOrStderr(), cmd.InOrStdin(), prompt)
				if err != nil {
					return err
				}
				if !force {
					infof(cmd, "left %s unchanged", cfgPath)
					raiseExitCode(1)
					return nil
				}
			}
			if !force {
				return fmt.Errorf("config already exists at %q (use --force to overwrite)", cfgPath)
			}
			if err := os.Remove(cfgPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove existing config %q: %w", cfgPath, err)
			}
		}

		cfg := config.DefaultConfig()
		if name != "" {
			cfg.Greeting.Name = name
		}
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", cfgPath); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite existing config without prompting")
	initCmd.Flags().Bool("interactive", false, "prompt before overwriting an existing config")
	initCmd.Flags().String("name", "", "application name used in the greeting")

	rootCmd.AddCommand(initCmd)
}
