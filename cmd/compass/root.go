// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for compass.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eraflo/compass/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging
	verbose bool

	// appConfig holds the loaded settings for all commands.
	appConfig = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "compass",
		Short: "Run markdown documents step by step",
		Long: TitleStyle.Render("compass") + SubtitleStyle.Render(" - Run markdown documents step by step") + `

compass turns a README into an executable runbook: every heading is a
step, every fenced code block is a command. Steps run in a dozen
languages with shell builtin emulation, safety gates and an optional
container sandbox.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Point compass at a README file or URL
  2. Review the parsed steps with: compass parse README.md
  3. Run them with: compass run README.md

` + SubtitleStyle.Render("Examples:") + `
  compass parse README.md         List the executable steps
  compass check README.md         Probe for missing dependencies
  compass run README.md           Execute the document
  compass run --sandbox README.md Execute inside a container
  compass serve README.md         Drive execution over JSON-RPC
  compass discover ~/projects     Find runbooks on disk
  compass hub search deploy       Search the community registry`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(hubCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig reads the settings file and applies global options.
func initRootConfig() {
	cfg, _, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		return
	}
	appConfig = cfg

	if verbose || appConfig.Verbose {
		log.SetLevel(log.DebugLevel)
	}
}
