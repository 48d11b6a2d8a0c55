// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"fmt"
	"strings"

	"github.com/eraflo/compass/internal/container"
	"github.com/eraflo/compass/internal/document"
	"github.com/eraflo/compass/internal/executor/language"
)

// Executor runs a single step's content through the gate pipeline:
// dependency validation, safety scanning, builtin interception and
// finally pty-backed execution. It owns the mutable session state
// (working directory, exported variables, sandbox settings) that
// carries over between steps.
type Executor struct {
	State  State
	Engine container.Engine
}

// NewExecutor returns an executor seeded with a fresh default state.
func NewExecutor() *Executor {
	return &Executor{State: NewState()}
}

// ExecuteStreamed runs content under the strategy selected by langTag,
// streaming every chunk of output to tx. The channel is never closed
// by this method. When bypassGates is true the dependency and safety
// checks are skipped; builtin interception still applies.
func (e *Executor) ExecuteStreamed(content, langTag string, bypassGates bool, tx chan<- string) document.StepStatus {
	strategy := language.Lookup(langTag)

	if !bypassGates {
		var err error
		if language.IsShellTag(langTag) {
			err = ValidateDependencies(content)
		} else {
			err = ValidateBinary(strategy.RequiredCommand())
		}
		if err != nil {
			tx <- err.Error() + "\n"
			return document.StatusFailed
		}

		if pattern, found := CheckSafety(content, strategy.DangerousPatterns()); found {
			tx <- fmt.Sprintf("Safety alert: Dangerous pattern detected ('%s'). Execution blocked.\n", pattern)
			return document.StatusFailed
		}
	}

	forwarded, simulated := InterceptBuiltins(content, &e.State)
	if simulated != "" {
		tx <- simulated
	}

	// Everything was handled as builtins; nothing left to spawn.
	if strings.TrimSpace(forwarded) == "" {
		return document.StatusSuccess
	}

	session := NewSession(e.State.Clone())
	session.Engine = e.Engine
	return session.Run(forwarded, langTag, tx)
}
