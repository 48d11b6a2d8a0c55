// SPDX-License-Identifier: MPL-2.0

package hook

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestHasAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"empty", Config{}, false},
		{"pre run", Config{PreRun: "echo hi"}, true},
		{"post run", Config{PostRun: "echo bye"}, true},
		{"on failure", Config{OnFailure: "notify"}, true},
		{"on success", Config{OnSuccess: "notify"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cfg.HasAny(); got != tt.want {
				t.Errorf("HasAny() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandSelection(t *testing.T) {
	t.Parallel()

	cfg := Config{
		PreRun:    "a",
		PostRun:   "b",
		OnFailure: "c",
		OnSuccess: "d",
	}
	tests := []struct {
		event Event
		want  string
	}{
		{EventPreRun, "a"},
		{EventPostRun, "b"},
		{EventOnFailure, "c"},
		{EventOnSuccess, "d"},
		{Event("unknown"), ""},
	}
	for _, tt := range tests {
		if got := cfg.command(tt.event); got != tt.want {
			t.Errorf("command(%q) = %q, want %q", tt.event, got, tt.want)
		}
	}
}

func TestTriggerUnconfiguredIsNoop(t *testing.T) {
	t.Parallel()

	// Must not panic or spawn anything.
	Config{}.Trigger(EventPreRun, nil)
}

func TestTriggerRunsCommandWithContextEnv(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	marker := filepath.Join(t.TempDir(), "fired")
	cfg := Config{PreRun: `printf '%s' "$COMPASS_HOOK_VALUE" > ` + marker}
	cfg.Trigger(EventPreRun, map[string]string{"COMPASS_HOOK_VALUE": "ran"})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if content, err := os.ReadFile(marker); err == nil {
			if string(content) != "ran" {
				t.Fatalf("marker content = %q, want %q", content, "ran")
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("hook did not run within the deadline")
}
