// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/eraflo/compass/internal/executor"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <file|url>",
	Short: "List the steps parsed from a document",
	Long: `Parse a markdown document and show the steps compass would execute:
titles, descriptions, code blocks, required placeholders and platform
conditions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, hooks, err := loadDocument(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if parseJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(steps)
		}

		renderer, rendererErr := glamour.NewTermRenderer(glamour.WithAutoStyle())

		fmt.Println(TitleStyle.Render(fmt.Sprintf("Parsed %d steps from %s", len(steps), args[0])))
		if hooks != nil && hooks.HasAny() {
			fmt.Println(SubtitleStyle.Render("Document declares lifecycle hooks"))
		}
		fmt.Println()

		for i, step := range steps {
			fmt.Printf("%s %s\n", TitleStyle.Render(fmt.Sprintf("%d.", i+1)), step.Title)
			if step.Condition != nil {
				fmt.Printf("   %s %s=%s\n", WarningStyle.Render("when:"), step.Condition.Kind, step.Condition.Value)
			}

			if desc := strings.TrimSpace(step.Description); desc != "" {
				if rendererErr == nil {
					if rendered, err := renderer.Render(desc); err == nil {
						fmt.Print(indent(strings.TrimRight(rendered, "\n"), "   "))
						fmt.Println()
					} else {
						fmt.Println(indent(desc, "   "))
					}
				} else {
					fmt.Println(indent(desc, "   "))
				}
			}

			for _, block := range step.CodeBlocks {
				lang := block.Language
				if lang == "" {
					lang = "shell"
				}
				fmt.Printf("   %s %s\n", CmdStyle.Render("code:"), lang)
				if len(block.Placeholders) > 0 {
					fmt.Printf("   %s %s\n", CmdStyle.Render("placeholders:"), strings.Join(block.Placeholders, ", "))
				}
			}
			if required := executor.RequiredPlaceholders(step); len(required) > 0 {
				fmt.Printf("   %s %s\n", WarningStyle.Render("requires:"), strings.Join(required, ", "))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "output steps as JSON")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
