// SPDX-License-Identifier: MPL-2.0

// Package hook runs user-defined lifecycle commands declared in a
// document's YAML frontmatter. Hooks are observational: they run
// fire-and-forget and never influence the outcome of a step.
package hook

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// Event names the lifecycle point a hook fires at.
type Event string

const (
	EventPreRun    Event = "pre_run"
	EventPostRun   Event = "post_run"
	EventOnFailure Event = "on_failure"
	EventOnSuccess Event = "on_success"
)

// Config holds the hook commands parsed from document frontmatter.
type Config struct {
	PreRun    string `yaml:"pre_run,omitempty" json:"pre_run,omitempty"`
	PostRun   string `yaml:"post_run,omitempty" json:"post_run,omitempty"`
	OnFailure string `yaml:"on_failure,omitempty" json:"on_failure,omitempty"`
	OnSuccess string `yaml:"on_success,omitempty" json:"on_success,omitempty"`
}

// HasAny reports whether at least one hook is configured.
func (c Config) HasAny() bool {
	return c.PreRun != "" || c.PostRun != "" || c.OnFailure != "" || c.OnSuccess != ""
}

func (c Config) command(event Event) string {
	switch event {
	case EventPreRun:
		return c.PreRun
	case EventPostRun:
		return c.PostRun
	case EventOnFailure:
		return c.OnFailure
	case EventOnSuccess:
		return c.OnSuccess
	}
	return ""
}

// Trigger fires the hook for event, if configured, in a background
// goroutine. The session's exported variables are injected into the
// hook's environment. A failing hook is reported but never affects
// step outcomes.
func (c Config) Trigger(event Event, contextEnv map[string]string) {
	command := c.command(event)
	if command == "" {
		return
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("powershell", "-Command", command)
	} else {
		cmd = exec.Command("sh", "-c", command)
	}
	cmd.Env = os.Environ()
	for key, value := range contextEnv {
		cmd.Env = append(cmd.Env, key+"="+value)
	}

	go func() {
		output, err := cmd.CombinedOutput()
		if err != nil {
			log.Error("hook failed", "event", event, "command", command, "err", err, "output", strings.TrimSpace(string(output)))
		}
	}()
}
