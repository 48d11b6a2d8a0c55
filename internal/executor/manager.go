// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"sync"

	"github.com/eraflo/compass/internal/container"
)

// Manager dispatches step executions onto background goroutines and
// collects their output into an unbounded message queue that callers
// drain with Poll. State changes made by a step (cd, export) are only
// published back through the Finished message; the caller decides when
// to merge them, which keeps concurrent steps isolated from each other.
type Manager struct {
	State  State
	Engine container.Engine

	mu    sync.Mutex
	queue []Message
}

// NewManager returns a manager seeded with a fresh default state.
func NewManager() *Manager {
	return &Manager{State: NewState()}
}

// ExecuteBackground starts the step at index in its own goroutine.
// The step runs against a snapshot of the manager's state taken at
// call time; it returns immediately.
func (m *Manager) ExecuteBackground(index int, content, langTag string, bypassGates bool) {
	local := &Executor{State: m.State.Clone(), Engine: m.Engine}

	stream := make(chan string)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for chunk := range stream {
			m.push(OutputPartial{Index: index, Text: chunk})
		}
	}()

	go func() {
		status := local.ExecuteStreamed(content, langTag, bypassGates, stream)
		close(stream)
		wg.Wait()
		m.push(Finished{
			Index:  index,
			Status: status,
			Dir:    local.State.CurrentDir,
			Env:    local.State.EnvVars,
		})
	}()
}

// Poll drains and returns every message queued since the last call.
// It never blocks; an empty slice means nothing happened yet.
func (m *Manager) Poll() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	drained := m.queue
	m.queue = nil
	return drained
}

// MergeState folds a finished step's directory and exports back into
// the manager's state for subsequent steps.
func (m *Manager) MergeState(fin Finished) {
	if fin.Dir != "" {
		m.State.CurrentDir = fin.Dir
	}
	for k, v := range fin.Env {
		m.State.EnvVars[k] = v
	}
}

func (m *Manager) push(msg Message) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	m.mu.Unlock()
}
