// SPDX-License-Identifier: MPL-2.0

// Package export renders a session into shareable JSON and Markdown
// reports: step outcomes, captured output and the session environment.
package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/eraflo/compass/internal/document"
)

//go:embed report.md.tmpl
var markdownTemplate string

var reportTmpl = template.Must(template.New("report.md").Parse(markdownTemplate))

// GenerateReport assembles a report from the session's steps and
// environment. Summary counts only consider executable steps.
func GenerateReport(steps []document.Step, readmePath, currentDir string, envVars, placeholders map[string]string, version string) Report {
	exported := make([]Step, 0, len(steps))
	for i, step := range steps {
		blocks := make([]CodeBlock, 0, len(step.CodeBlocks))
		for _, b := range step.CodeBlocks {
			blocks = append(blocks, CodeBlock{Language: b.Language, Content: b.Content})
		}
		exported = append(exported, Step{
			Number:      i + 1,
			Title:       step.Title,
			Description: step.Description,
			Status:      statusLabel(step.Status),
			CodeBlocks:  blocks,
			Output:      step.Output,
		})
	}

	var summary Summary
	for i := range steps {
		if !steps[i].IsExecutable() {
			continue
		}
		summary.TotalSteps++
		switch steps[i].Status {
		case document.StatusSuccess:
			summary.CompletedSteps++
		case document.StatusFailed:
			summary.FailedSteps++
		case document.StatusRunning:
			summary.RunningSteps++
		case document.StatusPending:
			summary.PendingSteps++
		}
	}
	if summary.TotalSteps > 0 {
		summary.CompletionPercentage = float64(summary.CompletedSteps) / float64(summary.TotalSteps) * 100
	}

	now := time.Now()
	return Report{
		Metadata: Metadata{
			CompassVersion:   version,
			GeneratedAt:      now.UTC().Format(time.RFC3339),
			GeneratedAtLocal: now.Format("2006-01-02 15:04:05"),
			ReadmePath:       readmePath,
		},
		Summary:     summary,
		Steps:       exported,
		Environment: Environment{CurrentDir: currentDir, EnvVars: envVars, Placeholders: placeholders},
	}
}

func statusLabel(status document.StepStatus) string {
	switch status {
	case document.StatusRunning:
		return "🔄 Running"
	case document.StatusSuccess:
		return "✅ Success"
	case document.StatusFailed:
		return "❌ Failed"
	case document.StatusSkipped:
		return "🚫 Skipped"
	default:
		return "⏳ Pending"
	}
}

// WriteJSON writes the report as pretty-printed JSON, creating parent
// directories as needed.
func WriteJSON(report Report, outputPath string) error {
	content, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing report to JSON: %w", err)
	}
	return writeFile(outputPath, content)
}

// WriteMarkdown renders the report through the embedded template and
// writes it, creating parent directories as needed.
func WriteMarkdown(report Report, outputPath string) error {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, report); err != nil {
		return fmt.Errorf("rendering markdown report: %w", err)
	}
	return writeFile(outputPath, buf.Bytes())
}

// DefaultOutputPaths returns timestamped report paths under baseDir.
func DefaultOutputPaths(baseDir string) (jsonPath, markdownPath string) {
	timestamp := time.Now().Format("20060102_150405")
	jsonPath = filepath.Join(baseDir, fmt.Sprintf("compass-report_%s.json", timestamp))
	markdownPath = filepath.Join(baseDir, fmt.Sprintf("compass-report_%s.md", timestamp))
	return jsonPath, markdownPath
}

// WriteBoth writes the JSON and Markdown reports to their default
// paths under baseDir and returns the paths written.
func WriteBoth(report Report, baseDir string) (jsonPath, markdownPath string, err error) {
	jsonPath, markdownPath = DefaultOutputPaths(baseDir)
	if err := WriteJSON(report, jsonPath); err != nil {
		return "", "", err
	}
	if err := WriteMarkdown(report, markdownPath); err != nil {
		return "", "", err
	}
	return jsonPath, markdownPath, nil
}

func writeFile(path string, content []byte) error {
	if parent := filepath.Dir(path); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", parent, err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}
