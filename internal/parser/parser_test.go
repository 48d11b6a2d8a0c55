// SPDX-License-Identifier: MPL-2.0

package parser

import (
	"strings"
	"testing"

	"github.com/eraflo/compass/internal/document"
)

func TestParseSimpleDocument(t *testing.T) {
	t.Parallel()

	source := `# Install dependencies

Run the installer first.

` + "```bash\nnpm install\n```" + `

# Start the server

` + "```bash\nnpm start\n```\n"

	steps, hooks := Parse([]byte(source))
	if hooks != nil {
		t.Fatalf("expected no hooks, got %+v", hooks)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}

	first := steps[0]
	if first.Title != "Install dependencies" {
		t.Errorf("first title = %q", first.Title)
	}
	if !strings.Contains(first.Description, "Run the installer first.") {
		t.Errorf("first description = %q", first.Description)
	}
	if len(first.CodeBlocks) != 1 {
		t.Fatalf("first step code blocks = %d", len(first.CodeBlocks))
	}
	if first.CodeBlocks[0].Language != "bash" {
		t.Errorf("language = %q", first.CodeBlocks[0].Language)
	}
	if first.CodeBlocks[0].Content != "npm install\n" {
		t.Errorf("content = %q", first.CodeBlocks[0].Content)
	}
	if first.Status != document.StatusPending {
		t.Errorf("status = %q", first.Status)
	}

	second := steps[1]
	if second.Title != "Start the server" {
		t.Errorf("second title = %q", second.Title)
	}
	if len(second.CodeBlocks) != 1 || second.CodeBlocks[0].Content != "npm start\n" {
		t.Errorf("second step blocks = %+v", second.CodeBlocks)
	}
}

func TestParseMultipleBlocksPerStep(t *testing.T) {
	t.Parallel()

	source := "# Build\n\n```sh\nmake\n```\n\n```sh\nmake test\n```\n"
	steps, _ := Parse([]byte(source))
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if len(steps[0].CodeBlocks) != 2 {
		t.Fatalf("expected 2 code blocks, got %d", len(steps[0].CodeBlocks))
	}
	if steps[0].CodeBlocks[1].Content != "make test\n" {
		t.Errorf("second block = %q", steps[0].CodeBlocks[1].Content)
	}
}

func TestParseCodeBeforeFirstHeadingDropped(t *testing.T) {
	t.Parallel()

	source := "```sh\nstray\n```\n\n# Real step\n\n```sh\necho ok\n```\n"
	steps, _ := Parse([]byte(source))
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if len(steps[0].CodeBlocks) != 1 || steps[0].CodeBlocks[0].Content != "echo ok\n" {
		t.Errorf("blocks = %+v", steps[0].CodeBlocks)
	}
}

func TestParsePlaceholders(t *testing.T) {
	t.Parallel()

	source := "# Deploy\n\n```bash\ndeploy --env <ENV> --token {{API_TOKEN}} --env <ENV>\n```\n"
	steps, _ := Parse([]byte(source))
	if len(steps) != 1 || len(steps[0].CodeBlocks) != 1 {
		t.Fatalf("unexpected steps: %+v", steps)
	}
	got := steps[0].CodeBlocks[0].Placeholders
	want := []string{"ENV", "API_TOKEN"}
	if len(got) != len(want) {
		t.Fatalf("placeholders = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placeholders[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseConditionDirectives(t *testing.T) {
	t.Parallel()

	source := `# Everywhere

<!-- compass:if os="linux" -->

# Linux setup

# Linux verify

<!-- compass:endif -->

# Afterwards
`
	steps, _ := Parse([]byte(source))
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(steps))
	}

	if steps[0].Condition != nil {
		t.Errorf("step before directive must be unconditional, got %+v", steps[0].Condition)
	}
	for _, i := range []int{1, 2} {
		cond := steps[i].Condition
		if cond == nil {
			t.Fatalf("step %d: expected condition", i)
		}
		if cond.Kind != document.ConditionOs || cond.Value != "linux" {
			t.Errorf("step %d condition = %+v", i, cond)
		}
	}
	if steps[3].Condition != nil {
		t.Errorf("step after endif must be unconditional, got %+v", steps[3].Condition)
	}
}

func TestParseConditionKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		directive string
		wantKind  document.ConditionKind
		wantValue string
	}{
		{"env var", `<!-- compass:if env_var_exists="CI" -->`, document.ConditionEnvVarExists, "CI"},
		{"file", `<!-- compass:if file_exists="/etc/hosts" -->`, document.ConditionFileExists, "/etc/hosts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			source := tt.directive + "\n\n# Guarded\n"
			steps, _ := Parse([]byte(source))
			if len(steps) != 1 || steps[0].Condition == nil {
				t.Fatalf("steps = %+v", steps)
			}
			cond := steps[0].Condition
			if cond.Kind != tt.wantKind || cond.Value != tt.wantValue {
				t.Errorf("condition = %+v, want kind=%q value=%q", cond, tt.wantKind, tt.wantValue)
			}
		})
	}
}

func TestParseUnknownConditionKey(t *testing.T) {
	t.Parallel()

	source := `<!-- compass:if arch="amd64" -->

# Guarded
`
	steps, _ := Parse([]byte(source))
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].Condition != nil {
		t.Errorf("unknown condition key should leave step unconditional, got %+v", steps[0].Condition)
	}
}

func TestParseFrontmatterHooks(t *testing.T) {
	t.Parallel()

	source := `---
pre_run: echo starting
on_failure: notify-send failed
---

# First step

` + "```sh\necho hi\n```\n"

	steps, hooks := Parse([]byte(source))
	if hooks == nil {
		t.Fatal("expected hook config")
	}
	if hooks.PreRun != "echo starting" {
		t.Errorf("PreRun = %q", hooks.PreRun)
	}
	if hooks.OnFailure != "notify-send failed" {
		t.Errorf("OnFailure = %q", hooks.OnFailure)
	}
	if hooks.PostRun != "" || hooks.OnSuccess != "" {
		t.Errorf("unexpected hooks set: %+v", hooks)
	}
	if len(steps) != 1 || steps[0].Title != "First step" {
		t.Fatalf("steps = %+v", steps)
	}
}

func TestParseMalformedFrontmatter(t *testing.T) {
	t.Parallel()

	source := "---\npre_run: [unclosed\n---\n\n# Step\n"
	steps, hooks := Parse([]byte(source))
	if hooks != nil {
		t.Errorf("malformed frontmatter must yield no hooks, got %+v", hooks)
	}
	// The document is parsed as-is, frontmatter included, so the final
	// heading must still come through as a step.
	if len(steps) == 0 || steps[len(steps)-1].Title != "Step" {
		t.Fatalf("steps = %+v", steps)
	}
}

func TestExtractPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"angle form", "curl <URL>", []string{"URL"}},
		{"brace form", "echo {{NAME}}", []string{"NAME"}},
		{"mixed and deduped", "run <PORT> {{PORT}} <HOST>", []string{"PORT", "HOST"}},
		{"html tag skipped", "<div class=\"x\">text</div>", nil},
		{"php open tag skipped", "<?php echo 1;", nil},
		{"none", "plain text", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractPlaceholders(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractPlaceholders(%q) = %v, want %v", tt.content, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ExtractPlaceholders(%q)[%d] = %q, want %q", tt.content, i, got[i], tt.want[i])
				}
			}
		})
	}
}
