// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eraflo/compass/internal/executor"
)

var checkCmd = &cobra.Command{
	Use:   "check <file|url>",
	Short: "Probe for the external commands a document needs",
	Long: `Scan every step of a document for external commands and verify each
one resolves on PATH. Non-shell blocks contribute their interpreter or
compiler (python3, node, rustc, ...).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _, err := loadDocument(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		result := executor.CheckDependencies(steps)

		fmt.Println(TitleStyle.Render("Dependency Check"))
		fmt.Println()
		for _, name := range result.Present {
			fmt.Printf("  %s %s\n", SuccessStyle.Render("✓"), name)
		}
		for _, name := range result.Missing {
			fmt.Printf("  %s %s\n", ErrorStyle.Render("✗"), name)
		}

		if len(result.Present) == 0 && len(result.Missing) == 0 {
			fmt.Println(SubtitleStyle.Render("  (no external commands found)"))
			return nil
		}
		if len(result.Missing) > 0 {
			return fmt.Errorf("%d missing dependencies", len(result.Missing))
		}
		return nil
	},
}
