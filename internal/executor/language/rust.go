// SPDX-License-Identifier: MPL-2.0

package language

import (
	"fmt"
	"runtime"
	"strings"
)

// Rust compiles and runs rust code blocks. rustc has no equivalent of
// "go run", so RunCommand chains compilation and execution through a shell.
type Rust struct{}

func (Rust) RequiredCommand() string { return "rustc" }

func (r Rust) Prepare(source, tempDir string) (string, error) {
	if !strings.Contains(source, "fn main") {
		source = "fn main() {\n" + source + "\n}"
	}
	return writeScript(source, tempDir, "compass-script-*.rs", "rust")
}

func (Rust) RunCommand(preparedPath string) []string {
	out := strings.TrimSuffix(preparedPath, ".rs") + ".exe"

	if runtime.GOOS == "windows" {
		return []string{
			"powershell", "-Command",
			fmt.Sprintf("rustc \"%s\" -o \"%s\"; if ($?) { & \"%s\" }", preparedPath, out, out),
		}
	}
	return []string{
		"sh", "-c",
		fmt.Sprintf("rustc %q -o %q && %q", preparedPath, out, out),
	}
}

func (Rust) DangerousPatterns() []string {
	return []string{
		"std::process",
		"std::fs::remove",
		"Command::new",
	}
}

func (Rust) EnvVars() map[string]string { return nil }

func (Rust) Extension() string { return "rs" }
