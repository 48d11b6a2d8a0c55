// SPDX-License-Identifier: MPL-2.0

package language

import "strings"

// PHP runs php code blocks. Snippets without an opening tag are wrapped so
// the interpreter doesn't echo them verbatim.
type PHP struct{}

func (PHP) RequiredCommand() string { return "php" }

func (p PHP) Prepare(source, tempDir string) (string, error) {
	if !strings.HasPrefix(source, "<?php") {
		source = "<?php\n" + source
	}
	return writeScript(source, tempDir, "compass-script-*.php", "php")
}

func (PHP) RunCommand(preparedPath string) []string {
	return []string{"php", preparedPath}
}

func (PHP) DangerousPatterns() []string {
	return []string{
		"exec(",
		"shell_exec",
		"system(",
		"passthru",
		"proc_open",
		"unlink(",
	}
}

func (PHP) EnvVars() map[string]string { return nil }

func (PHP) Extension() string { return "php" }
