// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eraflo/compass/internal/config"
)

// configCmd is the `compass config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage compass configuration",
	Long: `Manage compass configuration.

Configuration is stored in:
  - Linux: ~/.config/compass/config.toml
  - macOS: ~/Library/Application Support/compass/config.toml
  - Windows: %APPDATA%\compass\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault()
			if err != nil {
				return err
			}
			fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Printf("Config directory: %s\n", cfgDir)
			fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})
}

func showConfig() error {
	cfg, resolvedPath, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if resolvedPath != "" {
		fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), resolvedPath)
	} else {
		fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", CmdStyle.Render("sandbox_image"), SuccessStyle.Render(cfg.SandboxImage))
	fmt.Printf("%s: %s\n", CmdStyle.Render("container_engine"), SuccessStyle.Render(cfg.ContainerEngine))
	fmt.Printf("%s: %s\n", CmdStyle.Render("verbose"), SuccessStyle.Render(fmt.Sprintf("%v", cfg.Verbose)))
	return nil
}
