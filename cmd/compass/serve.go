// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eraflo/compass/internal/container"
	"github.com/eraflo/compass/internal/headless"
)

var (
	serveSandbox bool
	serveImage   string

	serveCmd = &cobra.Command{
		Use:   "serve <file|url>",
		Short: "Drive execution over JSON-RPC on stdio",
		Long: `Start a headless JSON-RPC 2.0 server on stdin/stdout so editors and
automation can drive the document. Supported methods: get_steps,
execute_step, set_variables, export_report. Step output streams back
as "log" notifications.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _, err := loadDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			readmePath := args[0]
			if !isRemote(readmePath) {
				if abs, err := filepath.Abs(readmePath); err == nil {
					readmePath = abs
				}
			}

			image := appConfig.SandboxImage
			if serveImage != "" {
				image = serveImage
			}

			opts := headless.Options{
				Steps:      steps,
				ReadmePath: readmePath,
				Sandbox:    serveSandbox,
				Image:      image,
				Version:    Version,
			}
			if serveSandbox {
				engine, err := container.NewEngine(container.EngineType(appConfig.ContainerEngine))
				if err != nil {
					return err
				}
				if err := engine.EnsureRunning(cmd.Context()); err != nil {
					return err
				}
				opts.Engine = engine
			}

			log.Debug("starting headless server", "steps", len(steps), "sandbox", serveSandbox)
			server := headless.NewServer(opts)
			return server.Serve(cmd.Context())
		},
	}
)

func init() {
	serveCmd.Flags().BoolVar(&serveSandbox, "sandbox", false, "run commands inside a container")
	serveCmd.Flags().StringVar(&serveImage, "image", "", "container image for sandboxed runs")
}
