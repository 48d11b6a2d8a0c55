// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eraflo/compass/internal/hub"
)

// hubCmd is the `compass hub` command tree.
var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Browse shared runbooks on the Compass Hub",
	Long: `Search the Compass Hub, a community registry of shared runbooks.
The registry location can be overridden with the COMPASS_HUB_URL
environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	hubCmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search the registry by name, description or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := hub.NewClient(Version)
			runbooks, err := client.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(runbooks) == 0 {
				fmt.Println(SubtitleStyle.Render(fmt.Sprintf("No runbooks matching %q", args[0])))
				return nil
			}

			fmt.Println(TitleStyle.Render(fmt.Sprintf("Found %d runbooks", len(runbooks))))
			fmt.Println()
			for _, rb := range runbooks {
				printRunbook(rb)
			}
			return nil
		},
	})

	hubCmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show one registry entry by exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := hub.NewClient(Version)
			rb, err := client.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if rb == nil {
				return fmt.Errorf("runbook %q not found in the hub registry", args[0])
			}

			printRunbook(*rb)
			fmt.Printf("Run it with: %s\n", CmdStyle.Render("compass run "+rb.URL))
			return nil
		},
	})
}

func printRunbook(rb hub.Runbook) {
	fmt.Printf("%s %s\n", TitleStyle.Render("▸ "+rb.Name), SubtitleStyle.Render(fmt.Sprintf("★ %d", rb.Stars)))
	fmt.Printf("   %s\n", rb.Description)
	if rb.Author != "" {
		fmt.Printf("   %s %s\n", CmdStyle.Render("author:"), rb.Author)
	}
	if len(rb.Tags) > 0 {
		fmt.Printf("   %s %s\n", CmdStyle.Render("tags:"), strings.Join(rb.Tags, ", "))
	}
	fmt.Printf("   %s %s\n", CmdStyle.Render("url:"), rb.URL)
	fmt.Println()
}
