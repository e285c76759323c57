package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.loadtester)
	ConfigDir string

	// DatabasePath is the SQLite database file for run history
	DatabasePath string

	// SettingsFile is the YAML settings file
	SettingsFile string
)

// SplunkSettings holds the connection parameters for the Splunk search service
type SplunkSettings struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	App      string `yaml:"app"`
	Index    string `yaml:"index"`
	// InsecureSkipVerify disables TLS verification; the Splunk management
	// port ships with a self-signed certificate
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// RunDefaults holds the pre-filled values for a new load test run
type RunDefaults struct {
	TotalRequests int `yaml:"total_requests"`
	Workers       int `yaml:"workers"`
}

// Settings is the full application configuration, loaded from
// ~/.loadtester/config.yaml with SPLUNK_* environment overrides
type Settings struct {
	Splunk   SplunkSettings `yaml:"splunk"`
	BaseURL  string         `yaml:"base_url"`
	Defaults RunDefaults    `yaml:"defaults"`
}

// DefaultSettings returns the settings used when no config file exists
func DefaultSettings() *Settings {
	return &Settings{
		Splunk: SplunkSettings{
			Host:               "localhost",
			Port:               8089,
			App:                "search",
			Index:              "otel_logging",
			InsecureSkipVerify: true,
		},
		BaseURL: "http://home.dev.com",
		Defaults: RunDefaults{
			TotalRequests: 1000,
			Workers:       10,
		},
	}
}

// Initialize sets up the configuration directory and files
// It creates ~/.loadtester/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".loadtester")
	DatabasePath = filepath.Join(ConfigDir, "loadtester.db")
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create a default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		data, err := yaml.Marshal(DefaultSettings())
		if err != nil {
			return fmt.Errorf("failed to marshal default settings: %w", err)
		}
		if err := os.WriteFile(SettingsFile, data, FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// Load reads the settings file and applies environment overrides
func Load() (*Settings, error) {
	settings := DefaultSettings()

	if SettingsFile != "" {
		data, err := os.ReadFile(SettingsFile)
		if err == nil {
			if err := yaml.Unmarshal(data, settings); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", SettingsFile, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	applyEnvOverrides(settings)

	return settings, nil
}

// applyEnvOverrides maps SPLUNK_* environment variables onto the settings
func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("SPLUNK_HOST"); v != "" {
		s.Splunk.Host = v
	}
	if v := os.Getenv("SPLUNK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			s.Splunk.Port = port
		}
	}
	if v := os.Getenv("SPLUNK_TOKEN"); v != "" {
		s.Splunk.Token = v
	}
	if v := os.Getenv("SPLUNK_USERNAME"); v != "" {
		s.Splunk.Username = v
	}
	if v := os.Getenv("SPLUNK_PASSWORD"); v != "" {
		s.Splunk.Password = v
	}
	if v := os.Getenv("SPLUNK_APP"); v != "" {
		s.Splunk.App = v
	}
	if v := os.Getenv("SPLUNK_INDEX"); v != "" {
		s.Splunk.Index = v
	}
	if v := os.Getenv("LOADTESTER_BASE_URL"); v != "" {
		s.BaseURL = v
	}
}
