// SPDX-License-Identifier: MPL-2.0

// Package container wraps the docker and podman CLIs for sandboxed step
// execution. It is a convenience wrapper, not a security boundary.
package container

import (
	"context"
	"fmt"
)

// EngineType identifies the container engine type.
type EngineType string

const (
	EngineTypeDocker EngineType = "docker"
	EngineTypePodman EngineType = "podman"
)

// RunOptions describes one container invocation.
type RunOptions struct {
	// Image is the image tag to run.
	Image string
	// Command is the argv executed inside the container.
	Command []string
	// WorkDir is the working directory inside the container.
	WorkDir string
	// Env contains environment variables injected with -e flags.
	Env map[string]string
	// Volumes are bind mounts in "host:container" format.
	Volumes []string
	// Remove removes the container after exit (--rm).
	Remove bool
	// Interactive keeps stdin open (-i).
	Interactive bool
	// TTY allocates a pseudo-TTY inside the container (-t).
	TTY bool
}

// Engine is the subset of container operations the executor needs.
type Engine interface {
	// Name returns the engine name.
	Name() string
	// BinaryPath returns the resolved CLI binary path, empty if missing.
	BinaryPath() string
	// Available reports whether the engine daemon is responsive.
	Available() bool
	// EnsureRunning verifies the daemon is up, attempting a best-effort
	// start when the CLI is installed but the daemon is down.
	EnsureRunning(ctx context.Context) error
	// RunArgs builds the full CLI argument list for a run invocation,
	// without executing it. The caller owns process spawning so it can
	// attach a pty.
	RunArgs(opts RunOptions) []string
	// ImageExists checks whether an image is present locally.
	ImageExists(ctx context.Context, image string) (bool, error)
}

// ErrEngineNotAvailable is returned when a container engine cannot be used.
type ErrEngineNotAvailable struct {
	Engine string
	Reason string
}

func (e *ErrEngineNotAvailable) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// NewEngine returns the preferred engine when it is installed, falling back
// to the other one. Installation is checked here, not daemon liveness;
// EnsureRunning handles that at use time.
func NewEngine(preferred EngineType) (Engine, error) {
	switch preferred {
	case EngineTypePodman:
		if engine := NewPodmanEngine(); engine.BinaryPath() != "" {
			return engine, nil
		}
		if engine := NewDockerEngine(); engine.BinaryPath() != "" {
			return engine, nil
		}
		return nil, &ErrEngineNotAvailable{
			Engine: "podman",
			Reason: "podman is not installed, and docker fallback is also not available",
		}

	case EngineTypeDocker:
		if engine := NewDockerEngine(); engine.BinaryPath() != "" {
			return engine, nil
		}
		if engine := NewPodmanEngine(); engine.BinaryPath() != "" {
			return engine, nil
		}
		return nil, &ErrEngineNotAvailable{
			Engine: "docker",
			Reason: "docker is not installed, and podman fallback is also not available",
		}

	default:
		return nil, fmt.Errorf("unknown container engine type: %s", preferred)
	}
}
