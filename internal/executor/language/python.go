// SPDX-License-Identifier: MPL-2.0

package language

import "runtime"

// Python runs python code blocks through the system interpreter.
type Python struct{}

// RequiredCommand returns the interpreter name. Windows installs expose
// "python" while Unix-likes conventionally ship "python3".
func (Python) RequiredCommand() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

func (p Python) Prepare(source, tempDir string) (string, error) {
	return writeScript(source, tempDir, "compass-script-*.py", "python")
}

func (p Python) RunCommand(preparedPath string) []string {
	return []string{p.RequiredCommand(), preparedPath}
}

func (Python) DangerousPatterns() []string {
	return []string{
		"os.system",
		"subprocess.call",
		"subprocess.run",
		"subprocess.Popen",
		"shutil.rmtree",
		"exec(",
		"eval(",
		"__import__",
		"open(",
		"write(",
	}
}

func (Python) EnvVars() map[string]string { return nil }

func (Python) Extension() string { return "py" }
