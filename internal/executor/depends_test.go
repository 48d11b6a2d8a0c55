// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"runtime"
	"strings"
	"testing"
)

func TestValidateDependencies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "empty content", content: "", wantErr: false},
		{name: "builtin echo", content: "echo hello", wantErr: false},
		{name: "builtin cd", content: "cd /tmp", wantErr: false},
		{name: "assignment", content: "FOO=bar ls", wantErr: false},
		{name: "missing binary", content: "definitely-not-installed-xyz --version", wantErr: true},
		{name: "sudo missing binary", content: "sudo definitely-not-installed-xyz", wantErr: true},
		{name: "bare sudo", content: "sudo", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateDependencies(tt.content)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDependencies(%q) error = %v, wantErr %v", tt.content, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDependencies_PresentBinary(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("relies on a unix binary name")
	}

	if err := ValidateDependencies("ls -la"); err != nil {
		t.Errorf("ls should resolve on PATH: %v", err)
	}
}

func TestValidateDependencies_ErrorMessage(t *testing.T) {
	t.Parallel()

	err := ValidateDependencies("definitely-not-installed-xyz")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Requirement not met: 'definitely-not-installed-xyz' is not installed."
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestValidateBinary(t *testing.T) {
	t.Parallel()

	err := ValidateBinary("definitely-not-installed-xyz")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Missing dependency: 'definitely-not-installed-xyz'") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
