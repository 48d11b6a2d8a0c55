// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eraflo/compass/internal/config"
	"github.com/eraflo/compass/internal/container"
	"github.com/eraflo/compass/internal/document"
	"github.com/eraflo/compass/internal/executor"
	"github.com/eraflo/compass/internal/executor/condition"
	"github.com/eraflo/compass/internal/export"
	"github.com/eraflo/compass/internal/hook"
)

var (
	runVars       []string
	runStep       int
	runSandbox    bool
	runImage      string
	runUnsafe     bool
	runExport     bool
	runTrustHooks bool

	runCmd = &cobra.Command{
		Use:   "run <file|url>",
		Short: "Execute a document step by step",
		Long: `Execute every step of a markdown document in order. Shell blocks get
cd/export emulation; other languages run through their interpreter or
compiler. Steps guarded by a condition that does not hold on this
machine are skipped.

Placeholder values (<NAME> or {{NAME}} in code blocks) are taken from
--var flags and from values remembered from previous runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocument(cmd, args[0])
		},
	}
)

func init() {
	runCmd.Flags().StringArrayVar(&runVars, "var", nil, "placeholder value as NAME=VALUE (repeatable)")
	runCmd.Flags().IntVar(&runStep, "step", 0, "run only the given step (1-indexed)")
	runCmd.Flags().BoolVar(&runSandbox, "sandbox", false, "run commands inside a container")
	runCmd.Flags().StringVar(&runImage, "image", "", "container image for sandboxed runs")
	runCmd.Flags().BoolVar(&runUnsafe, "unsafe", false, "skip dependency and safety gates")
	runCmd.Flags().BoolVar(&runExport, "export", false, "write JSON and Markdown session reports")
	runCmd.Flags().BoolVar(&runTrustHooks, "trust-hooks", false, "allow frontmatter lifecycle hooks to run")
}

func runDocument(cmd *cobra.Command, source string) error {
	steps, hooks, err := loadDocument(cmd.Context(), source)
	if err != nil {
		return err
	}

	if hooks != nil && hooks.HasAny() && !runTrustHooks {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+"document declares lifecycle hooks; pass --trust-hooks to run them")
		hooks = nil
	}

	values, store, err := resolvePlaceholders(steps, source)
	if err != nil {
		return err
	}

	mgr := executor.NewManager()
	if !isRemote(source) {
		if abs, err := filepath.Abs(source); err == nil {
			mgr.State.CurrentDir = filepath.Dir(abs)
		}
	}
	mgr.State.SandboxEnabled = runSandbox
	mgr.State.SandboxImage = appConfig.SandboxImage
	if runImage != "" {
		mgr.State.SandboxImage = runImage
	}
	if runSandbox {
		engine, err := container.NewEngine(container.EngineType(appConfig.ContainerEngine))
		if err != nil {
			return err
		}
		if err := engine.EnsureRunning(cmd.Context()); err != nil {
			return err
		}
		mgr.Engine = engine
	}

	if hooks != nil {
		hooks.Trigger(hook.EventPreRun, mgr.State.EnvVars)
	}

	evaluator := condition.Standard{}
	failed := false

	for i := range steps {
		if runStep > 0 && runStep != i+1 {
			continue
		}
		step := &steps[i]

		fmt.Println(TitleStyle.Render(fmt.Sprintf("▸ Step %d: %s", i+1, step.Title)))

		if !evaluator.StepApplies(step) {
			step.Status = document.StatusSkipped
			fmt.Println(SubtitleStyle.Render("  skipped (condition not met)"))
			continue
		}
		if !step.IsExecutable() {
			fmt.Println(SubtitleStyle.Render("  nothing to run"))
			continue
		}

		step.Status = document.StatusRunning
		status := executeStep(mgr, i, step, values)
		step.Status = status

		switch status {
		case document.StatusSuccess:
			fmt.Println(SuccessStyle.Render("  ✓ success"))
			if hooks != nil {
				hooks.Trigger(hook.EventOnSuccess, mgr.State.EnvVars)
			}
		case document.StatusFailed:
			fmt.Println(ErrorStyle.Render("  ✗ failed"))
			if hooks != nil {
				hooks.Trigger(hook.EventOnFailure, mgr.State.EnvVars)
			}
			failed = true
		}
		if failed {
			break
		}
	}

	if hooks != nil {
		hooks.Trigger(hook.EventPostRun, mgr.State.EnvVars)
	}

	if store != nil {
		store.Update(values)
		if err := store.Save(); err != nil {
			log.Warn("failed to save placeholder values", "err", err)
		}
	}

	if runExport {
		report := export.GenerateReport(steps, source, mgr.State.CurrentDir, mgr.State.EnvVars, values, Version)
		jsonPath, mdPath, err := export.WriteBoth(report, mgr.State.CurrentDir)
		if err != nil {
			return fmt.Errorf("failed to export session report: %w", err)
		}
		fmt.Printf("%s Exported %s and %s\n", SuccessStyle.Render("✓"), jsonPath, mdPath)
	}

	if failed {
		return fmt.Errorf("execution failed")
	}
	return nil
}

// executeStep dispatches one step to the manager and drains its
// output until the step finishes. State changes are merged back so
// later steps see them.
func executeStep(mgr *executor.Manager, index int, step *document.Step, values map[string]string) document.StepStatus {
	content := executor.BuildCommand(*step, values)

	langTag := ""
	if len(step.CodeBlocks) > 0 {
		langTag = step.CodeBlocks[0].Language
	}

	mgr.ExecuteBackground(index, content, langTag, runUnsafe)

	for {
		for _, msg := range mgr.Poll() {
			switch m := msg.(type) {
			case executor.OutputPartial:
				fmt.Print(m.Text)
				step.Output += m.Text
			case executor.Finished:
				mgr.MergeState(m)
				return m.Status
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// resolvePlaceholders merges remembered values with --var flags and
// verifies every placeholder the document needs has a value.
func resolvePlaceholders(steps []document.Step, source string) (map[string]string, *config.PlaceholderStore, error) {
	values := make(map[string]string)

	var store *config.PlaceholderStore
	if !isRemote(source) {
		s, err := config.NewPlaceholderStore()
		if err != nil {
			log.Warn("placeholder store unavailable", "err", err)
		} else if err := s.LoadFor(source); err != nil {
			log.Warn("failed to load stored placeholders", "err", err)
		} else {
			store = s
			for k, v := range s.All() {
				values[k] = v
			}
		}
	}

	for _, pair := range runVars {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid --var %q: expected NAME=VALUE", pair)
		}
		values[name] = value
	}

	var missing []string
	for _, step := range steps {
		for _, name := range executor.RequiredPlaceholders(step) {
			if _, ok := values[name]; !ok {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing placeholder values: %s (provide them with --var NAME=VALUE)", strings.Join(missing, ", "))
	}

	return values, store, nil
}
