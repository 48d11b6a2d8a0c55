// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"strings"
	"testing"

	"github.com/eraflo/compass/internal/document"
)

// drain collects everything sent to tx until fn returns.
func drain(t *testing.T, fn func(tx chan<- string) document.StepStatus) (document.StepStatus, string) {
	t.Helper()

	tx := make(chan string)
	var sb strings.Builder
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range tx {
			sb.WriteString(msg)
		}
	}()

	status := fn(tx)
	close(tx)
	<-done
	return status, sb.String()
}

func TestExecuteStreamed_BlocksDangerousPattern(t *testing.T) {
	t.Parallel()

	exec := NewExecutor()
	status, output := drain(t, func(tx chan<- string) document.StepStatus {
		return exec.ExecuteStreamed("rm -rf / --force", "bash", false, tx)
	})

	if status != document.StatusFailed {
		t.Fatalf("status = %v, want failed", status)
	}
	want := "Safety alert: Dangerous pattern detected ('rm -rf /'). Execution blocked.\n"
	if output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestExecuteStreamed_MissingInterpreter(t *testing.T) {
	t.Parallel()

	exec := NewExecutor()
	// Abuse PATH-independence: the gate fires before any process spawns.
	status, output := drain(t, func(tx chan<- string) document.StepStatus {
		return exec.ExecuteStreamed("definitely-not-installed-xyz", "bash", false, tx)
	})

	if status != document.StatusFailed {
		t.Fatalf("status = %v, want failed", status)
	}
	if !strings.Contains(output, "Requirement not met: 'definitely-not-installed-xyz' is not installed.") {
		t.Errorf("output = %q, want dependency diagnostic", output)
	}
}

func TestExecuteStreamed_BuiltinOnlyContent(t *testing.T) {
	t.Parallel()

	exec := NewExecutor()
	status, output := drain(t, func(tx chan<- string) document.StepStatus {
		return exec.ExecuteStreamed("export GREETING=hello", "bash", false, tx)
	})

	if status != document.StatusSuccess {
		t.Fatalf("status = %v, want success", status)
	}
	if exec.State.EnvVars["GREETING"] != "hello" {
		t.Errorf("EnvVars = %v, want GREETING recorded", exec.State.EnvVars)
	}
	if !strings.Contains(output, "export: GREETING=hello (Handled by Compass)") {
		t.Errorf("output = %q, want simulated export message", output)
	}
}

func TestExecuteStreamed_BuiltinsApplyToNonShellBlocks(t *testing.T) {
	t.Parallel()

	exec := NewExecutor()
	status, output := drain(t, func(tx chan<- string) document.StepStatus {
		// Gates bypassed so no interpreter needs to be installed; the
		// content is builtin-only so nothing spawns either.
		return exec.ExecuteStreamed("export LANGUAGE_AGNOSTIC=yes", "python", true, tx)
	})

	if status != document.StatusSuccess {
		t.Fatalf("status = %v, want success", status)
	}
	if exec.State.EnvVars["LANGUAGE_AGNOSTIC"] != "yes" {
		t.Errorf("EnvVars = %v, want export intercepted for non-shell blocks", exec.State.EnvVars)
	}
	if !strings.Contains(output, "export: LANGUAGE_AGNOSTIC=yes (Handled by Compass)") {
		t.Errorf("output = %q", output)
	}
}

func TestExecuteStreamed_BypassSkipsGates(t *testing.T) {
	t.Parallel()

	exec := NewExecutor()
	status, output := drain(t, func(tx chan<- string) document.StepStatus {
		// With gates bypassed the dangerous pattern is not blocked; the
		// content is builtin-only so nothing actually spawns.
		return exec.ExecuteStreamed("export X=rm -rf /", "bash", true, tx)
	})

	if status != document.StatusSuccess {
		t.Fatalf("status = %v, want success", status)
	}
	if strings.Contains(output, "Safety alert") {
		t.Errorf("gates ran despite bypass: %q", output)
	}
}
