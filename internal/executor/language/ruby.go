// SPDX-License-Identifier: MPL-2.0

package language

// Ruby runs ruby code blocks through the system interpreter.
type Ruby struct{}

func (Ruby) RequiredCommand() string { return "ruby" }

func (r Ruby) Prepare(source, tempDir string) (string, error) {
	return writeScript(source, tempDir, "compass-script-*.rb", "ruby")
}

func (Ruby) RunCommand(preparedPath string) []string {
	return []string{"ruby", preparedPath}
}

func (Ruby) DangerousPatterns() []string {
	return []string{
		"system(",
		"exec(",
		"`", // backticks shell out
		"FileUtils.rm",
		"File.delete",
		"syscall",
	}
}

func (Ruby) EnvVars() map[string]string { return nil }

func (Ruby) Extension() string { return "rb" }
