// SPDX-License-Identifier: MPL-2.0

// Package headless exposes the execution engine over JSON-RPC 2.0 on
// stdio, so editors and automation can drive a document without the
// interactive CLI. Requests and responses are plain JSON objects, one
// per line; step output streams back as "log" notifications.
package headless

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/eraflo/compass/internal/container"
	"github.com/eraflo/compass/internal/document"
	"github.com/eraflo/compass/internal/executor"
	"github.com/eraflo/compass/internal/export"
)

// Server owns the document steps and a shared executor. Requests are
// handled one at a time; execute_step holds the lock for the duration
// of the run, matching the engine's sequential state semantics.
type Server struct {
	mu           sync.Mutex
	steps        []document.Step
	exec         *executor.Executor
	placeholders map[string]string
	readmePath   string
	version      string
}

// Options configures a headless server.
type Options struct {
	Steps      []document.Step
	ReadmePath string
	Sandbox    bool
	Image      string
	Engine     container.Engine
	Version    string
}

// NewServer builds a server whose working directory starts at the
// document's parent directory. Remote documents (and anything else
// that does not resolve to a local path) keep the process cwd.
func NewServer(opts Options) *Server {
	exec := executor.NewExecutor()
	if opts.ReadmePath != "" {
		if info, err := os.Stat(opts.ReadmePath); err == nil {
			if info.IsDir() {
				exec.State.CurrentDir = opts.ReadmePath
			} else {
				exec.State.CurrentDir = filepath.Dir(opts.ReadmePath)
			}
		}
	}
	exec.State.SandboxEnabled = opts.Sandbox
	if opts.Image != "" {
		exec.State.SandboxImage = opts.Image
	}
	exec.Engine = opts.Engine
	return &Server{
		steps:        opts.Steps,
		exec:         exec,
		placeholders: make(map[string]string),
		readmePath:   opts.ReadmePath,
		version:      opts.Version,
	}
}

// Serve handles requests on stdin/stdout until EOF.
func (s *Server) Serve(ctx context.Context) error {
	stream := jsonrpc2.NewPlainObjectStream(stdioConn{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(s.handle))
	select {
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	case <-conn.DisconnectNotify():
		return nil
	}
}

type (
	executeParams struct {
		Index *int `json:"index"`
	}

	executeResult struct {
		Status document.StepStatus `json:"status"`
		Output string              `json:"output"`
	}

	setVariablesParams struct {
		Variables map[string]string `json:"variables"`
	}

	exportParams struct {
		Directory string `json:"directory,omitempty"`
	}

	exportResult struct {
		JSONPath     string `json:"json_path"`
		MarkdownPath string `json:"markdown_path"`
	}

	logNotification struct {
		Output string `json:"output"`
	}
)

func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case "get_steps":
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.steps, nil

	case "execute_step":
		return s.executeStep(ctx, conn, req)

	case "set_variables":
		var params setVariablesParams
		if req.Params == nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "Invalid params: missing variables"}
		}
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: fmt.Sprintf("Invalid params: %v", err)}
		}
		s.mu.Lock()
		for k, v := range params.Variables {
			s.placeholders[k] = v
		}
		s.mu.Unlock()
		return map[string]bool{"ok": true}, nil

	case "export_report":
		var params exportParams
		if req.Params != nil {
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: fmt.Sprintf("Invalid params: %v", err)}
			}
		}
		return s.exportReport(params.Directory)

	default:
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "Method not found"}
	}
}

func (s *Server) executeStep(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	var params executeParams
	if req.Params != nil {
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: fmt.Sprintf("Invalid params: %v", err)}
		}
	}
	if params.Index == nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "Invalid params: missing index"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := *params.Index
	if idx < 0 || idx >= len(s.steps) {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "Invalid params: index out of bounds"}
	}

	stream := make(chan string)
	var wg sync.WaitGroup
	var collected strings.Builder
	wg.Add(1)
	go func() {
		defer wg.Done()
		for msg := range stream {
			collected.WriteString(msg)
			_ = conn.Notify(ctx, "log", logNotification{Output: msg})
		}
	}()

	// A headless caller has already decided to run; gates are bypassed.
	finalStatus := document.StatusSuccess
	for _, block := range s.steps[idx].CodeBlocks {
		content := substitute(block.Content, s.placeholders)
		status := s.exec.ExecuteStreamed(content, block.Language, true, stream)
		if status != document.StatusSuccess {
			finalStatus = status
			break
		}
	}
	close(stream)
	wg.Wait()

	s.steps[idx].Status = finalStatus
	if collected.Len() > 0 {
		s.steps[idx].Output = collected.String()
	}
	return executeResult{Status: finalStatus, Output: s.steps[idx].Output}, nil
}

func (s *Server) exportReport(directory string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if directory == "" {
		directory = s.exec.State.CurrentDir
	}
	report := export.GenerateReport(s.steps, s.readmePath, s.exec.State.CurrentDir, s.exec.State.EnvVars, s.placeholders, s.version)
	jsonPath, mdPath, err := export.WriteBoth(report, directory)
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
	}
	return exportResult{JSONPath: jsonPath, MarkdownPath: mdPath}, nil
}

func substitute(content string, values map[string]string) string {
	for name, value := range values {
		content = strings.ReplaceAll(content, "<"+name+">", value)
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

// stdioConn adapts stdin/stdout into the io.ReadWriteCloser the
// jsonrpc2 stream wants.
type stdioConn struct{}

func (stdioConn) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioConn) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdioConn) Close() error {
	if err := os.Stdin.Close(); err != nil && err != io.ErrClosedPipe {
		return err
	}
	return os.Stdout.Close()
}
