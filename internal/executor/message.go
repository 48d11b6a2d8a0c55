// SPDX-License-Identifier: MPL-2.0

package executor

import "github.com/eraflo/compass/internal/document"

type (
	// Message is a progress report relayed from a background execution to
	// the polling caller.
	Message interface {
		// StepIndex identifies which step the message belongs to; it is
		// the only way to distinguish interleaved concurrent executions.
		StepIndex() int
	}

	// OutputPartial carries one decoded chunk of pty output. Chunks for a
	// single step arrive in write order.
	OutputPartial struct {
		Index int
		Text  string
	}

	// Finished reports the terminal status of one execution along with the
	// working directory and env map the execution ended with. The caller
	// merges these into the authoritative State on receipt.
	Finished struct {
		Index  int
		Status document.StepStatus
		Dir    string
		Env    map[string]string
	}
)

func (m OutputPartial) StepIndex() int { return m.Index }

func (m Finished) StepIndex() int { return m.Index }
