// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eraflo/compass/internal/discovery"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [dir]",
	Short: "Find runbooks under a directory",
	Long: `Scan a directory tree for runbooks: README.md files and anything
named *.runbook.md. Hidden directories and dependency directories
(node_modules, target) are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		paths, err := discovery.Scan(root)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println(SubtitleStyle.Render(fmt.Sprintf("No runbooks found under %s", root)))
			return nil
		}

		fmt.Println(TitleStyle.Render(fmt.Sprintf("Found %d runbooks under %s", len(paths), root)))
		for _, path := range paths {
			display := path
			if rel, err := filepath.Rel(root, path); err == nil {
				display = rel
			}
			fmt.Printf("  %s %s\n", SuccessStyle.Render("▸"), display)
		}
		return nil
	},
}
