// SPDX-License-Identifier: MPL-2.0

// Package discovery locates runbooks on disk: README.md files and
// anything named *.runbook.md.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxDepth bounds how far below the root the scan descends.
const maxDepth = 5

// Scan walks root iteratively and returns every runbook path found,
// sorted. Hidden directories and well-known build/dependency
// directories are skipped, as are unreadable ones.
func Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to scan %s: not a directory", root)
	}

	type frame struct {
		dir   string
		depth int
	}

	var results []string
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.depth > maxDepth {
			continue
		}

		entries, err := os.ReadDir(top.dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") || name == "target" || name == "node_modules" {
				continue
			}
			path := filepath.Join(top.dir, name)
			if entry.IsDir() {
				stack = append(stack, frame{path, top.depth + 1})
			} else if IsRunbook(path) {
				results = append(results, path)
			}
		}
	}

	sort.Strings(results)
	return results, nil
}

// IsRunbook reports whether a path looks like a runbook document:
// README.md (any casing) or a *.runbook.md file.
func IsRunbook(path string) bool {
	name := filepath.Base(path)
	return strings.EqualFold(name, "README.md") || strings.HasSuffix(name, ".runbook.md")
}
