// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/eraflo/compass/internal/container"
)

const (
	// sandboxWorkspace is where the session's working directory is mounted
	// inside the container.
	sandboxWorkspace = "/workspace"
	// sandboxTempMount is where the artifact's parent temp directory is
	// mounted inside the container.
	sandboxTempMount = "/compass-tmp"
)

// sandboxInvocation re-targets a prepared invocation into a container: the
// session cwd is mounted at a fixed workspace path, the artifact's parent
// temp directory at a fixed temp path, and every occurrence of the host temp
// directory inside the argv is textually rewritten to its in-container
// equivalent. The rewritten argv runs through an inner sh -c.
func sandboxInvocation(state State, argv []string, artifactParent string, env map[string]string) container.RunOptions {
	rewritten := make([]string, len(argv))
	for i, arg := range argv {
		rewritten[i] = strings.ReplaceAll(arg, artifactParent, sandboxTempMount)
	}

	return container.RunOptions{
		Image:   state.SandboxImage,
		Command: []string{"sh", "-c", quoteJoin(rewritten)},
		WorkDir: sandboxWorkspace,
		Env:     env,
		Volumes: []string{
			state.CurrentDir + ":" + sandboxWorkspace,
			artifactParent + ":" + sandboxTempMount,
		},
		Remove:      true,
		Interactive: true,
		TTY:         true,
	}
}

// quoteJoin joins argv into a single shell command line, quoting each token
// so arguments containing whitespace or metacharacters survive the inner
// shell intact.
func quoteJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			// Only unprintable control bytes are unquotable; pass through.
			q = arg
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
