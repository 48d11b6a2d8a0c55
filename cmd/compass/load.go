// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/eraflo/compass/internal/document"
	"github.com/eraflo/compass/internal/fetcher"
	"github.com/eraflo/compass/internal/hook"
	"github.com/eraflo/compass/internal/parser"
)

// loadDocument reads a markdown document from a local path or a remote
// URL and parses it into steps. GitHub and GitLab browsing URLs are
// fetched through their raw endpoints.
func loadDocument(ctx context.Context, source string) ([]document.Step, *hook.Config, error) {
	var content []byte

	if isRemote(source) {
		client := fetcher.NewClient(Version)
		body, err := client.Fetch(ctx, source)
		if err != nil {
			return nil, nil, err
		}
		content = []byte(body)
	} else {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", source, err)
		}
		content = data
	}

	steps, hooks := parser.Parse(content)
	if len(steps) == 0 {
		return nil, nil, fmt.Errorf("no steps found in %s", source)
	}
	return steps, hooks, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
