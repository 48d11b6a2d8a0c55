// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"reflect"
	"testing"

	"github.com/eraflo/compass/internal/document"
)

func TestRequiredPlaceholders(t *testing.T) {
	t.Parallel()

	step := document.Step{
		CodeBlocks: []document.CodeBlock{
			{Content: "echo <USER> {{TOKEN}}", Placeholders: []string{"USER", "TOKEN"}},
			{Content: "curl -u <USER>", Placeholders: []string{"USER"}},
			{Content: "deploy {{REGION}}", Placeholders: []string{"REGION"}},
		},
	}

	got := RequiredPlaceholders(step)
	want := []string{"USER", "TOKEN", "REGION"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RequiredPlaceholders = %v, want %v", got, want)
	}
}

func TestRequiredPlaceholders_Empty(t *testing.T) {
	t.Parallel()

	if got := RequiredPlaceholders(document.Step{}); len(got) != 0 {
		t.Errorf("expected no placeholders, got %v", got)
	}
}

func TestBuildCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		step   document.Step
		values map[string]string
		want   string
	}{
		{
			name: "angle form",
			step: document.Step{CodeBlocks: []document.CodeBlock{
				{Content: "echo <NAME>"},
			}},
			values: map[string]string{"NAME": "compass"},
			want:   "echo compass\n",
		},
		{
			name: "brace form",
			step: document.Step{CodeBlocks: []document.CodeBlock{
				{Content: "echo {{NAME}}"},
			}},
			values: map[string]string{"NAME": "compass"},
			want:   "echo compass\n",
		},
		{
			name: "multiple blocks joined",
			step: document.Step{CodeBlocks: []document.CodeBlock{
				{Content: "echo one"},
				{Content: "echo two"},
			}},
			values: nil,
			want:   "echo one\necho two\n",
		},
		{
			name: "unknown placeholder left intact",
			step: document.Step{CodeBlocks: []document.CodeBlock{
				{Content: "echo <MISSING>"},
			}},
			values: map[string]string{},
			want:   "echo <MISSING>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := BuildCommand(tt.step, tt.values); got != tt.want {
				t.Errorf("BuildCommand = %q, want %q", got, tt.want)
			}
		})
	}
}
