// SPDX-License-Identifier: MPL-2.0

// Package language defines per-language execution strategies: how a code
// block is materialized on disk, which binary runs it, which substrings are
// considered dangerous, and which extra environment entries it needs.
package language

import "strings"

// Strategy describes how one language's code blocks are prepared and run.
// Implementations are stateless values; Lookup constructs a fresh one per call.
type Strategy interface {
	// RequiredCommand returns the interpreter/compiler binary the strategy
	// depends on. Used by the dependency gate and the bulk checker.
	RequiredCommand() string

	// Prepare writes source to a fresh uniquely-named artifact under tempDir
	// and returns its path. For project-style languages the artifact is a
	// scaffolded directory rather than a single file.
	Prepare(source, tempDir string) (string, error)

	// RunCommand returns the argv that executes the prepared artifact.
	RunCommand(preparedPath string) []string

	// DangerousPatterns returns the ordered substring blacklist for this
	// language. The safety gate reports the first match.
	DangerousPatterns() []string

	// EnvVars returns extra environment entries to inject into the child
	// process. May be nil.
	EnvVars() map[string]string

	// Extension returns the artifact file extension without the dot.
	Extension() string
}

// shellTags are the fence tags routed to the shell family. An empty tag is
// also treated as shell.
var shellTags = map[string]bool{
	"sh": true, "bash": true, "zsh": true, "fish": true, "shell": true,
	"console": true, "terminal": true,
	"powershell": true, "pwsh": true, "ps1": true,
	"cmd": true, "batch": true, "bat": true,
}

// IsShellTag reports whether a fence tag belongs to the shell family.
// The empty tag counts as shell.
func IsShellTag(tag string) bool {
	tag = Normalize(tag)
	return tag == "" || shellTags[tag]
}

// Normalize lowercases and trims a fence tag for lookup.
func Normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Lookup resolves a fence tag to its Strategy. Unrecognized tags fall back to
// the platform default shell so that untagged or exotic blocks still run.
func Lookup(tag string) Strategy {
	switch t := Normalize(tag); t {
	case "python", "py":
		return Python{}
	case "javascript", "js", "node":
		return JavaScript{}
	case "typescript", "ts":
		return TypeScript{}
	case "go", "golang":
		return Go{}
	case "rust", "rs":
		return Rust{}
	case "csharp", "cs", "c#", "dotnet":
		return CSharp{}
	case "php":
		return PHP{}
	case "ruby", "rb":
		return Ruby{}
	default:
		if shellTags[t] {
			return Shell{Tag: t}
		}
		return Shell{Tag: "default"}
	}
}
