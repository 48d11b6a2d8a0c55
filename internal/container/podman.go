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

// PodmanEngine implements Engine using the podman CLI.
type PodmanEngine struct {
	binaryPath string
}

// NewPodmanEngine creates a podman engine, resolving the CLI binary eagerly.
func NewPodmanEngine() *PodmanEngine {
	path, _ := exec.LookPath("podman")
	return &PodmanEngine{binaryPath: path}
}

// Name returns the engine name.
func (e *PodmanEngine) Name() string { return "podman" }

// BinaryPath returns the resolved podman binary path, empty if not installed.
func (e *PodmanEngine) BinaryPath() string { return e.binaryPath }

// Available reports whether podman can run containers.
func (e *PodmanEngine) Available() bool {
	if e.binaryPath == "" {
		return false
	}
	return exec.Command(e.binaryPath, "info").Run() == nil
}

// EnsureRunning verifies podman is usable. Podman is daemonless on Linux;
// on macOS and Windows a VM backs it, so a stopped machine gets started.
func (e *PodmanEngine) EnsureRunning(ctx context.Context) error {
	if e.binaryPath == "" {
		return &ErrEngineNotAvailable{
			Engine: "podman",
			Reason: "podman is not installed or not in PATH; sandbox mode requires a container engine to isolate execution",
		}
	}

	if exec.CommandContext(ctx, e.binaryPath, "info").Run() == nil {
		return nil
	}

	if runtime.GOOS == "linux" {
		return &ErrEngineNotAvailable{
			Engine: "podman",
			Reason: "podman is installed but not functional",
		}
	}

	log.Info("podman machine is not running, attempting to start it")
	if err := exec.CommandContext(ctx, e.binaryPath, "machine", "start").Run(); err != nil {
		log.Debug("failed to start podman machine", "err", err)
	}

	deadline := time.Now().Add(startupTimeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for podman: %w", ctx.Err())
		case <-time.After(2 * time.Second):
		}
		if exec.CommandContext(ctx, e.binaryPath, "info").Run() == nil {
			log.Info("podman started")
			return nil
		}
	}

	return &ErrEngineNotAvailable{
		Engine: "podman",
		Reason: "timed out waiting for the podman machine to start",
	}
}

// RunArgs builds the podman run argument list for opts. On Linux, bind
// mounts get the :z SELinux label so rootless podman can access them.
func (e *PodmanEngine) RunArgs(opts RunOptions) []string {
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
		args = append(args, "-v", addSELinuxLabel(v))
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
func (e *PodmanEngine) ImageExists(ctx context.Context, image string) (bool, error) {
	err := exec.CommandContext(ctx, e.binaryPath, "image", "inspect", image).Run()
	return err == nil, nil
}

func addSELinuxLabel(volume string) string {
	if runtime.GOOS != "linux" {
		return volume
	}
	return volume + ":z"
}
