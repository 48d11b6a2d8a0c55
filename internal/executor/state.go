// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"maps"
	"os"
)

// DefaultSandboxImage is the container image used when sandbox mode is
// enabled and no image was configured.
const DefaultSandboxImage = "ubuntu:latest"

// State holds the mutable session-wide execution environment. Exactly one
// authoritative copy exists per session; each concurrent execution receives a
// value snapshot and the caller merges results back on completion.
type State struct {
	// CurrentDir is the working directory commands run in. Builtin cd
	// interception is the only way it changes between steps.
	CurrentDir string
	// EnvVars are the session's exported variables, layered on top of the
	// parent process environment.
	EnvVars map[string]string
	// SandboxEnabled re-targets execution into a container.
	SandboxEnabled bool
	// SandboxImage is the container image tag used in sandbox mode.
	SandboxImage string
}

// NewState returns a State rooted at the process working directory.
func NewState() State {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return State{
		CurrentDir:   cwd,
		EnvVars:      make(map[string]string),
		SandboxImage: DefaultSandboxImage,
	}
}

// Clone returns a deep copy so concurrent executions never share the env map.
func (s State) Clone() State {
	c := s
	c.EnvVars = make(map[string]string, len(s.EnvVars))
	maps.Copy(c.EnvVars, s.EnvVars)
	return c
}
