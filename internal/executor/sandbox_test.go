// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"slices"
	"strings"
	"testing"
)

func TestSandboxInvocation(t *testing.T) {
	t.Parallel()

	state := NewState()
	state.CurrentDir = "/home/user/project"
	state.SandboxImage = "alpine:3.20"

	opts := sandboxInvocation(state,
		[]string{"python3", "/tmp/compass-script-1.py"},
		"/tmp",
		map[string]string{"FOO": "bar"},
	)

	if opts.Image != "alpine:3.20" {
		t.Errorf("Image = %q, want the session's sandbox image", opts.Image)
	}
	if opts.WorkDir != "/workspace" {
		t.Errorf("WorkDir = %q, want /workspace", opts.WorkDir)
	}
	if !opts.Remove || !opts.Interactive || !opts.TTY {
		t.Errorf("Remove/Interactive/TTY = %v/%v/%v, want all true", opts.Remove, opts.Interactive, opts.TTY)
	}

	wantVolumes := []string{
		"/home/user/project:/workspace",
		"/tmp:/compass-tmp",
	}
	if !slices.Equal(opts.Volumes, wantVolumes) {
		t.Errorf("Volumes = %v, want %v", opts.Volumes, wantVolumes)
	}

	if len(opts.Command) != 3 || opts.Command[0] != "sh" || opts.Command[1] != "-c" {
		t.Fatalf("Command = %v, want sh -c <line>", opts.Command)
	}
	inner := opts.Command[2]
	if !strings.Contains(inner, "/compass-tmp/compass-script-1.py") {
		t.Errorf("inner command %q did not rewrite the temp path", inner)
	}
	if strings.Contains(inner, "/tmp/compass-script-1.py") {
		t.Errorf("inner command %q leaked the host temp path", inner)
	}
}

func TestQuoteJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
		want string
	}{
		{name: "plain args", argv: []string{"echo", "hello"}, want: "echo hello"},
		{name: "arg with space", argv: []string{"echo", "hello world"}, want: `echo 'hello world'`},
		{name: "arg with dollar", argv: []string{"echo", "$HOME"}, want: `echo '$HOME'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := quoteJoin(tt.argv); got != tt.want {
				t.Errorf("quoteJoin(%v) = %q, want %q", tt.argv, got, tt.want)
			}
		})
	}
}
