// SPDX-License-Identifier: MPL-2.0

package language

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// CSharp runs C# code blocks through the dotnet CLI. Unlike the script
// languages it needs a project skeleton, so Prepare scaffolds a console
// project synchronously and the artifact is the project directory.
type CSharp struct{}

func (CSharp) RequiredCommand() string { return "dotnet" }

func (CSharp) Prepare(source, tempDir string) (string, error) {
	projectDir, err := os.MkdirTemp(tempDir, "compass-cs-")
	if err != nil {
		return "", fmt.Errorf("failed to create C# project directory: %w", err)
	}

	// Generate a .csproj matching the user's installed SDK.
	cmd := exec.Command("dotnet", "new", "console", "--force")
	cmd.Dir = projectDir
	if out, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(projectDir)
		return "", fmt.Errorf("failed to initialize C# project: %w: %s", err, out)
	}

	// Top-level statements are supported by modern .NET, so the user code
	// replaces Program.cs wholesale.
	programPath := filepath.Join(projectDir, "Program.cs")
	if err := os.WriteFile(programPath, []byte(source), 0o644); err != nil {
		os.RemoveAll(projectDir)
		return "", fmt.Errorf("failed to write C# code to %s: %w", programPath, err)
	}

	return projectDir, nil
}

func (CSharp) RunCommand(preparedPath string) []string {
	return []string{
		"dotnet", "run",
		"--project", preparedPath,
		"--verbosity", "quiet",
		"--nologo",
	}
}

func (CSharp) DangerousPatterns() []string {
	return []string{
		"System.Diagnostics.Process",
		"File.Delete",
		"Directory.Delete",
		"File.Move",
		"WebClient",
		"HttpClient",
	}
}

// EnvVars suppresses the dotnet CLI's first-run banner and telemetry prompts,
// which would otherwise pollute streamed output.
func (CSharp) EnvVars() map[string]string {
	return map[string]string{
		"CI":                          "true",
		"DOTNET_NOLOGO":               "true",
		"DOTNET_CLI_TELEMETRY_OPTOUT": "true",
	}
}

func (CSharp) Extension() string { return "cs" }
