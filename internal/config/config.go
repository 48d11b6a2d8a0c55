// SPDX-License-Identifier: MPL-2.0

// Package config manages the application settings file and the
// per-document placeholder store, both kept under the platform config
// directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "compass"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// configDirOverride allows tests to redirect config storage.
var configDirOverride string

// SetConfigDirOverride redirects config storage, primarily for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Config holds the application settings.
type Config struct {
	// SandboxImage is the container image used for sandboxed runs.
	SandboxImage string `mapstructure:"sandbox_image" toml:"sandbox_image"`
	// ContainerEngine selects the engine binary (docker or podman).
	ContainerEngine string `mapstructure:"container_engine" toml:"container_engine"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose" toml:"verbose"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		SandboxImage:    "ubuntu:latest",
		ContainerEngine: "docker",
		Verbose:         false,
	}
}

// ConfigDir returns the compass configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the settings file, falling back to defaults when none
// exists. The config directory is probed first, then the working
// directory.
func Load() (Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("sandbox_image", defaults.SandboxImage)
	v.SetDefault("container_engine", defaults.ContainerEngine)
	v.SetDefault("verbose", defaults.Verbose)

	resolvedPath := ""
	cfgDir, err := ConfigDir()
	if err != nil {
		return defaults, "", err
	}

	candidates := []string{
		filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt),
		ConfigFileName + "." + ConfigFileExt,
	}
	for _, candidate := range candidates {
		if fileExists(candidate) {
			v.SetConfigFile(candidate)
			if err := v.ReadInConfig(); err != nil {
				return defaults, "", fmt.Errorf("failed to read config file %s: %w", candidate, err)
			}
			resolvedPath = candidate
			break
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return defaults, "", fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, resolvedPath, nil
}

// WriteDefault writes the built-in settings to the config directory
// and returns the path written. An existing file is not overwritten.
func WriteDefault() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", cfgDir, err)
	}

	path := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(path) {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	content, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to serialize default config: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
