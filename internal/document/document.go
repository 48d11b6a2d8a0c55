// SPDX-License-Identifier: MPL-2.0

// Package document defines the step model produced by the markdown parser and
// consumed by the execution engine.
package document

type (
	// StepStatus tracks the lifecycle of a step's execution.
	StepStatus string

	// ConditionKind discriminates the supported precondition types.
	ConditionKind string

	// Condition gates whether a step applies to the current machine. A step
	// whose condition does not hold is marked Skipped instead of executed.
	Condition struct {
		Kind  ConditionKind `json:"kind" yaml:"kind"`
		Value string        `json:"value" yaml:"value"`
	}

	// CodeBlock is one fenced code segment extracted from the document.
	CodeBlock struct {
		// Language is the fence tag (e.g. "bash", "python"). Empty means
		// the block is treated as shell.
		Language string `json:"language,omitempty" yaml:"language,omitempty"`
		// Content is the raw block text.
		Content string `json:"content" yaml:"content"`
		// Placeholders are the unique placeholder names found in Content,
		// in first-seen order.
		Placeholders []string `json:"placeholders,omitempty" yaml:"placeholders,omitempty"`
	}

	// Step is one executable unit parsed from the source document.
	Step struct {
		Title       string      `json:"title" yaml:"title"`
		Description string      `json:"description" yaml:"description"`
		CodeBlocks  []CodeBlock `json:"code_blocks" yaml:"code_blocks"`
		Status      StepStatus  `json:"status" yaml:"status"`
		// Output accumulates stdout/stderr from the last execution.
		Output    string     `json:"output,omitempty" yaml:"output,omitempty"`
		Condition *Condition `json:"condition,omitempty" yaml:"condition,omitempty"`
	}
)

const (
	StatusPending StepStatus = "pending"
	StatusRunning StepStatus = "running"
	StatusSuccess StepStatus = "success"
	StatusFailed  StepStatus = "failed"
	StatusSkipped StepStatus = "skipped"
)

const (
	// ConditionOs applies the step only on a given operating system.
	ConditionOs ConditionKind = "os"
	// ConditionEnvVarExists applies the step only when an env var is set.
	ConditionEnvVarExists ConditionKind = "env_var_exists"
	// ConditionFileExists applies the step only when a path exists.
	ConditionFileExists ConditionKind = "file_exists"
)

// IsExecutable reports whether the step has anything to run.
func (s *Step) IsExecutable() bool {
	return len(s.CodeBlocks) > 0
}

// IsTerminal reports whether the status is a final one.
func (st StepStatus) IsTerminal() bool {
	return st == StatusSuccess || st == StatusFailed || st == StatusSkipped
}
