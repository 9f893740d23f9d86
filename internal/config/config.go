// Package config manages the user configuration at ~/.reincheck/. The
// file is written as strict JSON but read tolerantly, so hand edits
// with comments or trailing commas still load.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/installer"
)

const (
	configDirName  = ".reincheck"
	configFileName = "config.json"
)

// AgentRecord is one resolved harness persisted by setup: the four
// resolved commands plus display metadata, so later invocations
// re-resolve consistently without consulting the preset again.
type AgentRecord struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	InstallCommand     string `json:"install_command"`
	UpgradeCommand     string `json:"upgrade_command"`
	VersionCommand     string `json:"version_command"`
	CheckLatestCommand string `json:"check_latest_command"`
	GitHubRepo         string `json:"github_repo,omitempty"`
	ReleaseNotesURL    string `json:"release_notes_url,omitempty"`
}

// Config is the persisted user configuration.
type Config struct {
	Preset    string                        `json:"preset,omitempty"`
	Agents    []AgentRecord                 `json:"agents"`
	Overrides map[string]installer.Override `json:"overrides,omitempty"`
}

// Manager handles reading and writing the configuration.
type Manager struct {
	configDir string
	mu        sync.RWMutex
}

// NewManager creates a Manager using the default config path
// (~/.reincheck/).
func NewManager() (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &Manager{configDir: filepath.Join(home, configDirName)}, nil
}

// NewManagerWithDir creates a Manager using a custom config directory.
// Useful for testing.
func NewManagerWithDir(dir string) *Manager {
	return &Manager{configDir: dir}
}

// ConfigDir returns the configuration directory path.
func (m *Manager) ConfigDir() string {
	return m.configDir
}

// ConfigPath returns the full path to the config file.
func (m *Manager) ConfigPath() string {
	return filepath.Join(m.configDir, configFileName)
}

// Load reads the config from disk. Returns an empty config if the file
// doesn't exist.
func (m *Manager) Load() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := catalog.DecodeJWCC(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
// The previous file, if any, is kept as config.json.bak.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	path := m.ConfigPath()
	if prev, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+".bak", prev, 0o644); err != nil {
			return fmt.Errorf("backing up config: %w", err)
		}
	}

	// Write atomically: write to temp file then rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // clean up on failure
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}
