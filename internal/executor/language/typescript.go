// SPDX-License-Identifier: MPL-2.0

package language

import "runtime"

// TypeScript runs ts code blocks through ts-node. A node+tsc fallback would
// need a build step, so ts-node is assumed the way script runners usually do.
type TypeScript struct{}

func (TypeScript) RequiredCommand() string {
	if runtime.GOOS == "windows" {
		return "ts-node.cmd"
	}
	return "ts-node"
}

func (t TypeScript) Prepare(source, tempDir string) (string, error) {
	return writeScript(source, tempDir, "compass-script-*.ts", "typescript")
}

func (t TypeScript) RunCommand(preparedPath string) []string {
	return []string{t.RequiredCommand(), preparedPath}
}

func (TypeScript) DangerousPatterns() []string {
	return []string{
		"child_process",
		"exec(",
		"Deno.run",
		"fs.rm",
		"fs.unlink",
	}
}

func (TypeScript) EnvVars() map[string]string { return nil }

func (TypeScript) Extension() string { return "ts" }
