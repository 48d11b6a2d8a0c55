// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// PlaceholderConfig stores the placeholder values a user has entered
// for one document, so they are not asked again on the next run.
type PlaceholderConfig struct {
	ReadmePath   string            `json:"readme_path"`
	Placeholders map[string]string `json:"placeholders"`
	LastModified string            `json:"last_modified,omitempty"`
}

// PlaceholderStore persists per-document placeholder values to the
// config directory, one JSON file per document, keyed by a hash of its
// canonical path.
type PlaceholderStore struct {
	dir      string
	current  PlaceholderConfig
	filePath string
}

// NewPlaceholderStore ensures the config directory exists and returns
// an empty store. Call LoadFor before reading or saving values.
func NewPlaceholderStore() (*PlaceholderStore, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return &PlaceholderStore{
		dir:     dir,
		current: PlaceholderConfig{Placeholders: make(map[string]string)},
	}, nil
}

// LoadFor reads the stored values for readmePath, starting fresh when
// none exist yet.
func (s *PlaceholderStore) LoadFor(readmePath string) error {
	canonical := readmePath
	if resolved, err := filepath.Abs(readmePath); err == nil {
		canonical = resolved
	}
	if resolved, err := filepath.EvalSymlinks(canonical); err == nil {
		canonical = resolved
	}

	s.filePath = filepath.Join(s.dir, placeholderFilename(canonical))

	content, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		s.current = PlaceholderConfig{
			ReadmePath:   canonical,
			Placeholders: make(map[string]string),
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", s.filePath, err)
	}
	if err := json.Unmarshal(content, &s.current); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", s.filePath, err)
	}
	if s.current.Placeholders == nil {
		s.current.Placeholders = make(map[string]string)
	}
	return nil
}

// Save persists the current values to disk.
func (s *PlaceholderStore) Save() error {
	if s.filePath == "" {
		return fmt.Errorf("no configuration file path set; call LoadFor first")
	}

	s.current.LastModified = time.Now().UTC().Format(time.RFC3339)
	content, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize placeholder config: %w", err)
	}
	if err := os.WriteFile(s.filePath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", s.filePath, err)
	}
	return nil
}

// Get returns the stored value for key, if any.
func (s *PlaceholderStore) Get(key string) (string, bool) {
	value, ok := s.current.Placeholders[key]
	return value, ok
}

// Set stores a value in memory; call Save to persist it.
func (s *PlaceholderStore) Set(key, value string) {
	s.current.Placeholders[key] = value
}

// Update merges values in bulk; call Save to persist them.
func (s *PlaceholderStore) Update(values map[string]string) {
	for key, value := range values {
		s.current.Placeholders[key] = value
	}
}

// All returns the stored placeholder map.
func (s *PlaceholderStore) All() map[string]string {
	return s.current.Placeholders
}

// placeholderFilename derives a stable per-document filename from the
// canonical path.
func placeholderFilename(path string) string {
	var hash uint64
	for _, b := range []byte(path) {
		hash = hash*31 + uint64(b)
	}
	return fmt.Sprintf("readme_%016x.json", hash)
}
