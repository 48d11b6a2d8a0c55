// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// startupTimeout bounds how long EnsureRunning waits for a freshly started
// daemon to become responsive.
const startupTimeout = 45 * time.Second

// DockerEngine implements Engine using the docker CLI.
type DockerEngine struct {
	binaryPath string
}

// NewDockerEngine creates a docker engine, resolving the CLI binary eagerly.
func NewDockerEngine() *DockerEngine {
	path, _ := exec.LookPath("docker")
	return &DockerEngine{binaryPath: path}
}

// Name returns the engine name.
func (e *DockerEngine) Name() string { return "docker" }

// BinaryPath returns the resolved docker binary path, empty if not installed.
func (e *DockerEngine) BinaryPath() string { return e.binaryPath }

// Available reports whether the docker daemon answers.
func (e *DockerEngine) Available() bool {
	if e.binaryPath == "" {
		return false
	}
	return exec.Command(e.binaryPath, "info").Run() == nil
}

// EnsureRunning checks the daemon and, when docker is installed but down,
// makes a best-effort attempt to start it before waiting for readiness.
func (e *DockerEngine) EnsureRunning(ctx context.Context) error {
	if e.binaryPath == "" {
		return &ErrEngineNotAvailable{
			Engine: "docker",
			Reason: "docker is not installed or not in PATH; sandbox mode requires docker to isolate execution",
		}
	}

	if exec.CommandContext(ctx, e.binaryPath, "info").Run() == nil {
		return nil
	}

	log.Info("docker daemon is not running, attempting to start it")
	e.tryStartDaemon(ctx)

	deadline := time.Now().Add(startupTimeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for docker: %w", ctx.Err())
		case <-time.After(2 * time.Second):
		}
		if exec.CommandContext(ctx, e.binaryPath, "info").Run() == nil {
			log.Info("docker started")
			return nil
		}
	}

	return &ErrEngineNotAvailable{
		Engine: "docker",
		Reason: "timed out waiting for the docker daemon to start",
	}
}

// tryStartDaemon launches the platform's docker service. Failures are logged
// and swallowed; EnsureRunning's wait loop is the real arbiter.
func (e *DockerEngine) tryStartDaemon(ctx context.Context) {
	switch runtime.GOOS {
	case "darwin":
		if err := exec.CommandContext(ctx, "open", "-a", "Docker").Start(); err != nil {
			log.Debug("failed to launch Docker Desktop", "err", err)
		}
	case "windows":
		path := `C:\Program Files\Docker\Docker\Docker Desktop.exe`
		if err := exec.CommandContext(ctx, path).Start(); err != nil {
			log.Debug("failed to launch Docker Desktop", "err", err)
		}
	default:
		// Hope for polkit or user privileges.
		if err := exec.CommandContext(ctx, "systemctl", "start", "docker").Run(); err != nil {
			log.Debug("failed to start docker service", "err", err)
		}
	}
}

// RunArgs builds the docker run argument list for opts. Env flags are emitted
// in sorted key order so the invocation is deterministic.
func (e *DockerEngine) RunArgs(opts RunOptions) []string {
	args := []string{"run"}

	if opts.Remove {
		args = append(args, "--rm")
	}
	if opts.Interactive {
		args = append(args, "-i")
	}
	if opts.TTY {
		args = append(args, "-t")
	}
	for _, v := range opts.Volumes {
		args = append(args, "-v", v)
	}
	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}

	keys := make([]string, 0, len(opts.Env))
	for k := range opts.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", k+"="+opts.Env[k])
	}

	args = append(args, opts.Image)
	args = append(args, opts.Command...)
	return args
}

// ImageExists checks whether the image is present locally.
func (e *DockerEngine) ImageExists(ctx context.Context, image string) (bool, error) {
	err := exec.CommandContext(ctx, e.binaryPath, "image", "inspect", image).Run()
	return err == nil, nil
}
