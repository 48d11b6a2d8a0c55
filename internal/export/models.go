// SPDX-License-Identifier: MPL-2.0

package export

// Report is the complete session export.
type Report struct {
	Metadata    Metadata    `json:"metadata"`
	Summary     Summary     `json:"summary"`
	Steps       []Step      `json:"steps"`
	Environment Environment `json:"environment"`
}

// Metadata describes the report itself.
type Metadata struct {
	CompassVersion string `json:"compass_version"`
	// GeneratedAt is the UTC generation time in RFC 3339 form.
	GeneratedAt string `json:"generated_at"`
	// GeneratedAtLocal is a local timestamp meant for display.
	GeneratedAtLocal string `json:"generated_at_local"`
	ReadmePath       string `json:"readme_path"`
}

// Summary aggregates status counts over the executable steps.
type Summary struct {
	TotalSteps           int     `json:"total_steps"`
	CompletedSteps       int     `json:"completed_steps"`
	FailedSteps          int     `json:"failed_steps"`
	PendingSteps         int     `json:"pending_steps"`
	RunningSteps         int     `json:"running_steps"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// Step is one step as it appears in the report.
type Step struct {
	// Number is 1-indexed.
	Number      int         `json:"number"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	CodeBlocks  []CodeBlock `json:"code_blocks"`
	Output      string      `json:"output"`
}

// CodeBlock is one code block as it appears in the report.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

// Environment captures the session environment at export time.
type Environment struct {
	CurrentDir   string            `json:"current_dir"`
	EnvVars      map[string]string `json:"env_vars"`
	Placeholders map[string]string `json:"placeholders"`
}
