// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"os/exec"
	"sort"
	"strings"

	"github.com/eraflo/compass/internal/document"
	"github.com/eraflo/compass/internal/executor/language"
)

// CheckResult is the outcome of a bulk dependency scan over a whole
// document: which external binaries are resolvable and which are not.
type CheckResult struct {
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

// CheckDependencies scans every executable step for external commands
// and probes PATH for each one. Shell blocks are scanned token by
// token; non-shell blocks contribute their runtime's interpreter or
// compiler. Both result lists are sorted and deduplicated.
func CheckDependencies(steps []document.Step) CheckResult {
	commands := make(map[string]struct{})

	for _, step := range steps {
		for _, block := range step.CodeBlocks {
			if language.IsShellTag(block.Language) {
				collectShellCommands(block.Content, commands)
				continue
			}
			strategy := language.Lookup(block.Language)
			required := strategy.RequiredCommand()
			switch required {
			case "sh", "powershell", "cmd":
				// Always present on their platform; not worth reporting.
			default:
				commands[required] = struct{}{}
			}
		}
	}

	var result CheckResult
	for cmd := range commands {
		if _, err := exec.LookPath(cmd); err != nil {
			result.Missing = append(result.Missing, cmd)
		} else {
			result.Present = append(result.Present, cmd)
		}
	}
	sort.Strings(result.Present)
	sort.Strings(result.Missing)
	return result
}

func collectShellCommands(content string, commands map[string]struct{}) {
	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, segment := range strings.FieldsFunc(line, func(r rune) bool {
			return r == '&' || r == '|' || r == ';'
		}) {
			fields := strings.Fields(segment)
			if len(fields) == 0 {
				continue
			}
			cmd := fields[0]
			if cmd == "sudo" && len(fields) > 1 {
				cmd = fields[1]
			}
			if skipShellToken(cmd) {
				continue
			}
			commands[cmd] = struct{}{}
		}
	}
}

func skipShellToken(token string) bool {
	if token == "" || strings.Contains(token, "=") {
		return true
	}
	// Paths (./script, bin/tool, C:\tool) are never PATH candidates.
	if strings.ContainsAny(token, `/\`) {
		return true
	}
	if strings.HasPrefix(token, "$") || strings.HasPrefix(token, "~") {
		return true
	}
	_, keyword := checkerKeywords[token]
	return keyword
}

// checkerKeywords are shell syntax keywords and builtins the bulk scan
// ignores. Strictly shell syntax: common utilities like curl or git stay
// in so a fresh container that lacks them gets reported.
var checkerKeywords = map[string]struct{}{
	"cd": {}, "echo": {}, "printf": {}, "export": {}, "unset": {}, "set": {},
	"alias": {}, "unalias": {}, "source": {}, ".": {}, "eval": {}, "exec": {},
	"exit": {}, "return": {}, "true": {}, "false": {}, "test": {}, "[": {},
	"[[": {}, "read": {}, "wait": {}, "bg": {}, "fg": {}, "jobs": {},
	"kill": {}, "history": {}, "pwd": {}, "pushd": {}, "popd": {}, "dirs": {},
	"shift": {}, "umask": {}, "if": {}, "then": {}, "else": {}, "elif": {},
	"fi": {}, "for": {}, "while": {}, "until": {}, "do": {}, "done": {},
	"case": {}, "esac": {}, "function": {}, "select": {}, "break": {},
	"continue": {},
}
