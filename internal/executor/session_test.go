// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"runtime"
	"strings"
	"testing"

	"github.com/eraflo/compass/internal/document"
)

func runSession(t *testing.T, content, langTag string, state State) (document.StepStatus, string) {
	t.Helper()

	session := NewSession(state)

	tx := make(chan string)
	var sb strings.Builder
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range tx {
			sb.WriteString(msg)
		}
	}()

	status := session.Run(content, langTag, tx)
	close(tx)
	<-done
	return status, sb.String()
}

func TestSessionRun_EchoSucceeds(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("pty behavior differs on windows")
	}

	status, output := runSession(t, "echo 42", "bash", NewState())

	if status != document.StatusSuccess {
		t.Fatalf("status = %v, want success (output %q)", status, output)
	}
	if !strings.Contains(output, "42") {
		t.Errorf("output = %q, want it to contain 42", output)
	}
}

func TestSessionRun_FailingCommand(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("pty behavior differs on windows")
	}

	status, _ := runSession(t, "exit 3", "bash", NewState())

	if status != document.StatusFailed {
		t.Errorf("status = %v, want failed", status)
	}
}

func TestSessionRun_EnvVarVisible(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("pty behavior differs on windows")
	}

	state := NewState()
	state.EnvVars["COMPASS_TEST_VALUE"] = "sentinel-764"

	status, output := runSession(t, "echo $COMPASS_TEST_VALUE", "bash", state)

	if status != document.StatusSuccess {
		t.Fatalf("status = %v, want success (output %q)", status, output)
	}
	if !strings.Contains(output, "sentinel-764") {
		t.Errorf("output = %q, want exported variable visible in child", output)
	}
}

func TestSessionRun_RunsInStateDir(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("pty behavior differs on windows")
	}

	state := NewState()
	state.CurrentDir = t.TempDir()

	status, output := runSession(t, "pwd", "bash", state)

	if status != document.StatusSuccess {
		t.Fatalf("status = %v, want success (output %q)", status, output)
	}
	// TempDir may be behind a symlink on darwin, so match the leaf only.
	if !strings.Contains(output, "/") {
		t.Errorf("output = %q, want a path from pwd", output)
	}
}
