// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/creack/pty"

	"github.com/eraflo/compass/internal/container"
	"github.com/eraflo/compass/internal/document"
	"github.com/eraflo/compass/internal/executor/language"
)

const (
	// ptyRows and ptyCols fix the pseudo-terminal at 24x80. The size is not
	// tied to the caller's viewport; long lines wrap at 80 columns.
	ptyRows = 24
	ptyCols = 80

	// readChunkSize is the pty read buffer size. Output is forwarded one
	// chunk at a time, so a multi-byte rune can straddle two chunks.
	readChunkSize = 4096
)

// Session executes one prepared invocation behind a pseudo-terminal and
// streams its output. A Session is single-use and owns the artifact it
// prepares until the child exits.
type Session struct {
	State State

	// Engine overrides the container engine used in sandbox mode.
	// Nil means docker.
	Engine container.Engine
}

// NewSession creates a session over a snapshot of state.
func NewSession(state State) *Session {
	return &Session{State: state}
}

func (s *Session) engine() container.Engine {
	if s.Engine != nil {
		return s.Engine
	}
	return container.NewDockerEngine()
}

// Run prepares content for langTag, spawns it on a pty, streams decoded
// output chunks to tx, and blocks until the child exits. Preparation and
// spawn failures become a diagnostic line on tx and a Failed status; the
// caller process is never aborted by bad step content.
func (s *Session) Run(content, langTag string, tx chan<- string) document.StepStatus {
	strat := language.Lookup(langTag)

	artifact, err := strat.Prepare(content, os.TempDir())
	if err != nil {
		tx <- fmt.Sprintf("Failed to prepare code: %v\n", err)
		return document.StatusFailed
	}

	argv := strat.RunCommand(artifact)

	// Session env first, strategy entries win on collision.
	env := make(map[string]string, len(s.State.EnvVars))
	maps.Copy(env, s.State.EnvVars)
	maps.Copy(env, strat.EnvVars())

	var cmd *exec.Cmd
	if s.State.SandboxEnabled {
		eng := s.engine()
		opts := sandboxInvocation(s.State, argv, filepath.Dir(artifact), env)
		cmd = exec.Command(eng.BinaryPath(), eng.RunArgs(opts)...)
	} else {
		cmd = exec.Command(argv[0], argv[1:]...)
		cmd.Dir = s.State.CurrentDir
		cmd.Env = append(os.Environ(), envToSlice(env)...)
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: ptyRows, Cols: ptyCols})
	if err != nil {
		tx <- fmt.Sprintf("Error spawning process: %v\n", err)
		removeArtifact(artifact)
		return document.StatusFailed
	}

	// Dedicated reader so the wait below never blocks output delivery.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		buf := make([]byte, readChunkSize)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				// A chunk that fails to decode (multi-byte rune split
				// across the read boundary) is dropped, not buffered.
				if chunk := buf[:n]; utf8.Valid(chunk) {
					tx <- string(chunk)
				}
			}
			if readErr != nil {
				return
			}
		}
	}()

	waitErr := cmd.Wait()

	removeArtifact(artifact)

	if runtime.GOOS == "windows" {
		// Give ConPTY a moment to flush buffered output.
		time.Sleep(50 * time.Millisecond)
	}

	// Closing the master signals EOF to the reader; join it so every chunk
	// written before exit is forwarded.
	ptmx.Close()
	<-readerDone

	if waitErr != nil {
		return document.StatusFailed
	}
	return document.StatusSuccess
}

// removeArtifact deletes a prepared file or project directory. Best effort:
// cleanup failures are never surfaced.
func removeArtifact(path string) {
	_ = os.RemoveAll(path)
}

// envToSlice flattens an env map into KEY=VALUE entries.
func envToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}
