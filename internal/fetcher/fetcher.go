// SPDX-License-Identifier: MPL-2.0

// Package fetcher downloads remote markdown documents, rewriting
// GitHub and GitLab browsing URLs to their raw-content equivalents.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

// Client fetches remote documents over HTTP.
type Client struct {
	// UserAgent is sent with every request.
	UserAgent string
	// HTTPClient defaults to http.DefaultClient when nil.
	HTTPClient *http.Client
}

// NewClient returns a client identifying itself as Compass/<version>.
func NewClient(version string) *Client {
	return &Client{UserAgent: "Compass/" + version}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Fetch downloads the document at rawURL and returns its body.
// Forge blob URLs are transparently rewritten to raw URLs first.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid URL format: %q", rawURL)
	}

	target := NormalizeForgeURL(u).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", target, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to connect to %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to download content. Status: %s - %s", resp.Status, target)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if !strings.Contains(ct, "text") && !strings.Contains(ct, "markdown") && !strings.Contains(ct, "plain") {
			log.Warn("remote content does not look like text", "url", target, "content-type", ct)
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}
