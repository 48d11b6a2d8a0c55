// SPDX-License-Identifier: MPL-2.0

package condition

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/eraflo/compass/internal/document"
)

func TestEvaluateOs(t *testing.T) {
	t.Parallel()

	ev := Standard{}

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"current os", runtime.GOOS, true},
		{"current os padded", " " + runtime.GOOS + " ", true},
		{"other os", "plan9", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ev.Evaluate(document.Condition{Kind: document.ConditionOs, Value: tt.value})
			if got != tt.want {
				t.Errorf("Evaluate(os=%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestEvaluateOsMacAliases(t *testing.T) {
	t.Parallel()

	ev := Standard{}
	want := runtime.GOOS == "darwin"
	for _, value := range []string{"macos", "osx", "MacOS"} {
		if got := ev.Evaluate(document.Condition{Kind: document.ConditionOs, Value: value}); got != want {
			t.Errorf("Evaluate(os=%q) = %v, want %v", value, got, want)
		}
	}
}

func TestEvaluateEnvVarExists(t *testing.T) {
	t.Setenv("COMPASS_COND_SET", "1")

	ev := Standard{}
	if !ev.Evaluate(document.Condition{Kind: document.ConditionEnvVarExists, Value: "COMPASS_COND_SET"}) {
		t.Error("expected set env var to evaluate true")
	}
	if ev.Evaluate(document.Condition{Kind: document.ConditionEnvVarExists, Value: "COMPASS_COND_DEFINITELY_UNSET"}) {
		t.Error("expected unset env var to evaluate false")
	}
}

func TestEvaluateFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := Standard{}
	if !ev.Evaluate(document.Condition{Kind: document.ConditionFileExists, Value: path}) {
		t.Errorf("expected %s to evaluate true", path)
	}
	if ev.Evaluate(document.Condition{Kind: document.ConditionFileExists, Value: filepath.Join(dir, "absent.txt")}) {
		t.Error("expected missing file to evaluate false")
	}
}

func TestEvaluateUnknownKind(t *testing.T) {
	t.Parallel()

	ev := Standard{}
	if ev.Evaluate(document.Condition{Kind: "arch", Value: "amd64"}) {
		t.Error("unknown condition kind must evaluate false")
	}
}

func TestStepApplies(t *testing.T) {
	t.Parallel()

	ev := Standard{}

	unconditional := &document.Step{Title: "Setup"}
	if !ev.StepApplies(unconditional) {
		t.Error("step without condition must always apply")
	}

	matching := &document.Step{
		Title:     "Host only",
		Condition: &document.Condition{Kind: document.ConditionOs, Value: runtime.GOOS},
	}
	if !ev.StepApplies(matching) {
		t.Error("step with matching condition must apply")
	}

	other := &document.Step{
		Title:     "Elsewhere",
		Condition: &document.Condition{Kind: document.ConditionOs, Value: "plan9"},
	}
	if ev.StepApplies(other) {
		t.Error("step with non-matching condition must not apply")
	}
}
