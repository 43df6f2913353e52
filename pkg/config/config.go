package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Listing backends understood by the mirror command.
const (
	BackendGH  = "gh"
	BackendAPI = "api"
)

// DefaultRemote is the name given to the upstream remote of every mirror.
const DefaultRemote = "github"

// Config represents the ghmirror configuration
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	Mirror MirrorConfig `yaml:"mirror"`
}

// GitHubConfig represents GitHub-specific configuration
type GitHubConfig struct {
	Token  string `yaml:"token,omitempty"`
	Remote string `yaml:"remote,omitempty"`
}

// MirrorConfig represents mirror target configuration
type MirrorConfig struct {
	Root    string `yaml:"root,omitempty"`
	Backend string `yaml:"backend,omitempty"`
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to the default location
func (c *Config) SaveConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveConfigToPath(configPath)
}

// SaveConfigToPath saves configuration to a specific path
func (c *Config) SaveConfigToPath(path string) error {
	// Create config directory if it doesn't exist
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold a token, keep it private.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".ghmirror", "config.yaml"), nil
}

// Remote returns the configured upstream remote name, or the default.
func (c *Config) Remote() string {
	if c.GitHub.Remote != "" {
		return c.GitHub.Remote
	}
	return DefaultRemote
}

// Backend returns the configured listing backend, or the default.
func (c *Config) Backend() string {
	if c.Mirror.Backend != "" {
		return c.Mirror.Backend
	}
	return BackendGH
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Mirror.Backend {
	case "", BackendGH, BackendAPI:
	default:
		return fmt.Errorf("unknown listing backend %q: must be %q or %q", c.Mirror.Backend, BackendGH, BackendAPI)
	}

	return nil
}
