// SPDX-License-Identifier: MPL-2.0

package language

// JavaScript runs js code blocks with node.
type JavaScript struct{}

func (JavaScript) RequiredCommand() string { return "node" }

func (j JavaScript) Prepare(source, tempDir string) (string, error) {
	return writeScript(source, tempDir, "compass-script-*.js", "javascript")
}

func (JavaScript) RunCommand(preparedPath string) []string {
	return []string{"node", preparedPath}
}

func (JavaScript) DangerousPatterns() []string {
	return []string{
		"child_process",
		"exec(",
		"spawn(",
		"fs.rm",
		"fs.unlink",
		"fs.writeFile",
		"process.kill",
	}
}

func (JavaScript) EnvVars() map[string]string { return nil }

func (JavaScript) Extension() string { return "js" }
