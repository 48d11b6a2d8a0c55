// SPDX-License-Identifier: MPL-2.0

package language

import "strings"

// Go runs go code blocks via "go run". Blocks that omit the package clause
// are wrapped so snippets copied from docs still compile.
type Go struct{}

func (Go) RequiredCommand() string { return "go" }

func (g Go) Prepare(source, tempDir string) (string, error) {
	// Naive containment check: a "package main" inside a string or comment
	// is indistinguishable from a real clause.
	if !strings.Contains(source, "package main") {
		source = "package main\n\n" + source
	}
	return writeScript(source, tempDir, "compass-main-*.go", "go")
}

func (Go) RunCommand(preparedPath string) []string {
	return []string{"go", "run", preparedPath}
}

func (Go) DangerousPatterns() []string {
	return []string{
		"os/exec",
		"os.Remove",
		"syscall.Exec",
		"os.RemoveAll",
	}
}

func (Go) EnvVars() map[string]string { return nil }

func (Go) Extension() string { return "go" }
