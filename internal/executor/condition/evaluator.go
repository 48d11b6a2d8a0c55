// SPDX-License-Identifier: MPL-2.0

// Package condition evaluates step guard conditions against the host
// environment, deciding whether a conditional step runs or is skipped.
package condition

import (
	"os"
	"runtime"
	"strings"

	"github.com/eraflo/compass/internal/document"
)

// Evaluator decides whether a single condition holds on this host.
type Evaluator interface {
	Evaluate(cond document.Condition) bool
}

// Standard evaluates conditions against the real operating system:
// runtime.GOOS, the process environment and the local filesystem.
type Standard struct{}

// Evaluate reports whether cond holds. Unknown condition kinds
// evaluate to false so a typo never silently runs a guarded step.
func (Standard) Evaluate(cond document.Condition) bool {
	switch cond.Kind {
	case document.ConditionOs:
		return normalizeOs(cond.Value) == runtime.GOOS
	case document.ConditionEnvVarExists:
		_, ok := os.LookupEnv(cond.Value)
		return ok
	case document.ConditionFileExists:
		_, err := os.Stat(cond.Value)
		return err == nil
	default:
		return false
	}
}

// StepApplies reports whether a step should run on this host. Steps
// without a condition always apply.
func (s Standard) StepApplies(step *document.Step) bool {
	if step.Condition == nil {
		return true
	}
	return s.Evaluate(*step.Condition)
}

func normalizeOs(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "macos" || value == "osx" {
		return "darwin"
	}
	return value
}
