// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// InterceptBuiltins scans content line by line for cd/export, applies their
// effect to state, and returns the remaining text to forward to the session
// plus a simulated-output transcript of what was handled.
//
// A spawned child cannot mutate its parent's working directory or
// environment, so this interception is the only mechanism by which cd and
// export have session-lasting effect across steps. The match is a plain
// prefix heuristic, not a shell grammar.
func InterceptBuiltins(content string, state *State) (forwarded, simulated string) {
	var remaining []string
	var sim strings.Builder

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		handled := false

		if rest, ok := strings.CutPrefix(trimmed, "cd "); ok {
			if dir, ok := resolveChdir(state.CurrentDir, rest); ok {
				state.CurrentDir = dir
				fmt.Fprintf(&sim, "cd: %s (Handled by Compass)\n", dir)
			}
			// Removed from the forwarded text even when the path was bad:
			// letting the child cd would silently diverge from the session.
			handled = true
		}

		if rest, ok := strings.CutPrefix(trimmed, "export "); ok {
			if key, val, ok := strings.Cut(strings.TrimSpace(rest), "="); ok {
				key = strings.TrimSpace(key)
				val = trimQuotes(val)
				state.EnvVars[key] = val
				fmt.Fprintf(&sim, "export: %s=%s (Handled by Compass)\n", key, val)
			}
			handled = true
		}

		if !handled {
			remaining = append(remaining, line)
		}
	}

	return strings.Join(remaining, "\n"), sim.String()
}

// resolveChdir resolves a cd target against base and reports whether it names
// an existing directory. The result is canonicalized when possible.
func resolveChdir(base, arg string) (string, bool) {
	path := trimQuotes(strings.TrimSpace(arg))
	if path == "" {
		return "", false
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", false
	}

	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if runtime.GOOS == "windows" {
		// Canonicalization may add the \\?\ UNC prefix, which breaks some
		// tools when passed back on a command line.
		path = strings.TrimPrefix(path, `\\?\`)
	}
	return path, true
}

func trimQuotes(s string) string {
	return strings.Trim(s, `"'`)
}
