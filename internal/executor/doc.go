// SPDX-License-Identifier: MPL-2.0

// Package executor is the command execution engine. It turns one step's raw
// source text into a validated, possibly-sandboxed process running behind a
// pseudo-terminal, streams its output, and reports a terminal status.
//
// The pipeline per execution is: dependency gate → safety gate → builtin
// interception → pty session. The Manager runs one pipeline per goroutine and
// relays messages back to a single polling caller, which owns the one
// authoritative State and merges each Finished message into it.
package executor
