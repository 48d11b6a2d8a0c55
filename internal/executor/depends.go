// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"fmt"
	"os/exec"
	"strings"
)

// gateBuiltins are first tokens the dependency gate accepts without a PATH
// lookup: they are shell builtins or keywords, never external binaries.
var gateBuiltins = map[string]bool{
	"cd": true, "export": true, "set": true, "unset": true, "exit": true,
	"echo": true, "source": true, ".": true, "true": true, "false": true,
	"if": true, "for": true, "while": true, "case": true,
}

// ValidateDependencies checks that the leading binary of a command string is
// resolvable on PATH. A leading sudo is skipped, assignments (VAR=val) and
// shell builtins are accepted unconditionally. Advisory: only the first token
// is examined.
func ValidateDependencies(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}

	fields := strings.Fields(trimmed)
	binary := fields[0]
	if binary == "sudo" {
		if len(fields) < 2 {
			return nil
		}
		binary = fields[1]
	}

	if strings.Contains(binary, "=") || gateBuiltins[binary] {
		return nil
	}

	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("Requirement not met: '%s' is not installed.", binary)
	}
	return nil
}

// ValidateBinary checks that a specific binary resolves on PATH. Used for
// non-shell language interpreters before any artifact is prepared.
func ValidateBinary(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("Missing dependency: '%s' is not installed or not in PATH.", name)
	}
	return nil
}
