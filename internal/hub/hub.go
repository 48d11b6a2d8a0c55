// SPDX-License-Identifier: MPL-2.0

// Package hub talks to the Compass Hub, a static JSON registry of
// shared runbooks, for searching and resolving runbooks by name.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// defaultRegistryURL is the published community registry.
	defaultRegistryURL = "https://eraflo.github.io/Compass/registry.json"
	// registryEnvVar overrides the registry location.
	registryEnvVar = "COMPASS_HUB_URL"
)

// Runbook is one registry entry: a named, tagged pointer to a
// runnable document.
type Runbook struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Author      string   `json:"author,omitempty"`
	Stars       int      `json:"stars,omitempty"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags,omitempty"`
}

// Client fetches and queries the registry.
type Client struct {
	// UserAgent is sent with every request.
	UserAgent string
	// RegistryURL is the registry document location.
	RegistryURL string
	// HTTPClient defaults to a 5-second-timeout client when nil.
	HTTPClient *http.Client
}

// NewClient returns a client for the default registry, honoring the
// COMPASS_HUB_URL override.
func NewClient(version string) *Client {
	registryURL := os.Getenv(registryEnvVar)
	if registryURL == "" {
		registryURL = defaultRegistryURL
	}
	return &Client{
		UserAgent:   "Compass/" + version,
		RegistryURL: registryURL,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 5 * time.Second}
}

// Registry downloads and decodes the full registry.
func (c *Client) Registry(ctx context.Context) ([]Runbook, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RegistryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building registry request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to contact Compass Hub: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Compass Hub returned error status: %s", resp.Status)
	}

	var runbooks []Runbook
	if err := json.NewDecoder(resp.Body).Decode(&runbooks); err != nil {
		return nil, fmt.Errorf("failed to parse registry JSON: %w", err)
	}
	return runbooks, nil
}

// Search returns the registry entries whose name, description or tags
// contain query, case-insensitively.
func (c *Client) Search(ctx context.Context, query string) ([]Runbook, error) {
	runbooks, err := c.Registry(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var matched []Runbook
	for _, rb := range runbooks {
		if rb.matches(query) {
			matched = append(matched, rb)
		}
	}
	return matched, nil
}

// Resolve returns the registry entry with exactly the given name, or
// nil when the registry has no such runbook.
func (c *Client) Resolve(ctx context.Context, name string) (*Runbook, error) {
	runbooks, err := c.Registry(ctx)
	if err != nil {
		return nil, err
	}
	for i := range runbooks {
		if runbooks[i].Name == name {
			return &runbooks[i], nil
		}
	}
	return nil, nil
}

func (rb Runbook) matches(query string) bool {
	if strings.Contains(strings.ToLower(rb.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(rb.Description), query) {
		return true
	}
	for _, tag := range rb.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
