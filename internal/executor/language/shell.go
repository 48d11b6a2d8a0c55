// SPDX-License-Identifier: MPL-2.0

package language

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Shell runs shell-family code blocks. The Tag field picks the concrete
// interpreter; "default" resolves to sh on Unix and powershell on Windows.
type Shell struct {
	Tag string
}

func (s Shell) isPowershell() bool {
	return s.Tag == "powershell" || s.Tag == "pwsh" || s.Tag == "ps1" ||
		(s.Tag == "default" && runtime.GOOS == "windows")
}

func (s Shell) isCmd() bool {
	return s.Tag == "cmd" || s.Tag == "batch" || s.Tag == "bat"
}

// RequiredCommand returns the shell binary for the tag.
func (s Shell) RequiredCommand() string {
	switch {
	case s.isPowershell():
		return "powershell"
	case s.isCmd():
		return "cmd"
	case s.Tag == "zsh":
		return "zsh"
	case s.Tag == "bash":
		return "bash"
	case s.Tag == "fish":
		return "fish"
	case s.Tag == "sh", s.Tag == "default", s.Tag == "", s.Tag == "shell",
		s.Tag == "console", s.Tag == "terminal":
		return "sh"
	default:
		return "bash"
	}
}

// Prepare writes the script to a uniquely-named file under tempDir.
func (s Shell) Prepare(source, tempDir string) (string, error) {
	f, err := os.CreateTemp(tempDir, "compass-script-*."+s.Extension())
	if err != nil {
		return "", fmt.Errorf("failed to write shell script: %w", err)
	}
	if _, err := f.WriteString(source); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write shell script to %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close shell script %s: %w", f.Name(), err)
	}
	return f.Name(), nil
}

// RunCommand builds the interpreter invocation for the prepared script.
func (s Shell) RunCommand(preparedPath string) []string {
	cmd := s.RequiredCommand()

	switch {
	case s.isPowershell():
		// -ExecutionPolicy Bypass so the script runs despite local policy.
		return []string{cmd, "-ExecutionPolicy", "Bypass", "-File", preparedPath}
	case s.isCmd():
		return []string{cmd, "/C", preparedPath}
	default:
		path := preparedPath
		if runtime.GOOS == "windows" {
			// bash/sh on Windows want forward slashes
			path = strings.ReplaceAll(filepath.ToSlash(path), "\\", "/")
		}
		return []string{cmd, path}
	}
}

// DangerousPatterns lists destructive shell idioms that require confirmation.
func (s Shell) DangerousPatterns() []string {
	return []string{
		"rm -rf /",
		"rm -rf *",
		"mkfs",
		"> /dev/sd",
		"dd if=",
		":(){:|:&};:", // fork bomb
		"mv /",
		"chmod -R 777 /",
	}
}

// EnvVars returns nil; shells need no extra environment.
func (s Shell) EnvVars() map[string]string { return nil }

// Extension returns the script extension for the tag.
func (s Shell) Extension() string {
	switch {
	case s.isPowershell():
		return "ps1"
	case s.isCmd():
		return "bat"
	default:
		return "sh"
	}
}
