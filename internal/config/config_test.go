package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	SettingsFile = filepath.Join(t.TempDir(), "missing.yaml")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if settings.Splunk.Port != 8089 {
		t.Errorf("Expected default port 8089, got %d", settings.Splunk.Port)
	}
	if settings.BaseURL != "http://home.dev.com" {
		t.Errorf("Expected default base URL, got %s", settings.BaseURL)
	}
	if settings.Defaults.TotalRequests != 1000 || settings.Defaults.Workers != 10 {
		t.Errorf("Unexpected run defaults: %+v", settings.Defaults)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	SettingsFile = filepath.Join(dir, "config.yaml")

	content := []byte(`
splunk:
  host: splunk.internal
  port: 8090
  token: abc123
  index: access_logs
base_url: http://api.example.com
defaults:
  total_requests: 500
  workers: 25
`)
	if err := os.WriteFile(SettingsFile, content, FilePermissions); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if settings.Splunk.Host != "splunk.internal" {
		t.Errorf("Expected host splunk.internal, got %s", settings.Splunk.Host)
	}
	if settings.Splunk.Port != 8090 {
		t.Errorf("Expected port 8090, got %d", settings.Splunk.Port)
	}
	if settings.Splunk.Index != "access_logs" {
		t.Errorf("Expected index access_logs, got %s", settings.Splunk.Index)
	}
	if settings.BaseURL != "http://api.example.com" {
		t.Errorf("Expected overridden base URL, got %s", settings.BaseURL)
	}
	if settings.Defaults.Workers != 25 {
		t.Errorf("Expected 25 workers, got %d", settings.Defaults.Workers)
	}
}

func TestEnvOverrides(t *testing.T) {
	SettingsFile = filepath.Join(t.TempDir(), "missing.yaml")

	t.Setenv("SPLUNK_HOST", "env-host")
	t.Setenv("SPLUNK_PORT", "9999")
	t.Setenv("SPLUNK_TOKEN", "env-token")
	t.Setenv("LOADTESTER_BASE_URL", "http://env.example.com")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if settings.Splunk.Host != "env-host" {
		t.Errorf("Expected env host override, got %s", settings.Splunk.Host)
	}
	if settings.Splunk.Port != 9999 {
		t.Errorf("Expected env port override, got %d", settings.Splunk.Port)
	}
	if settings.Splunk.Token != "env-token" {
		t.Errorf("Expected env token override, got %s", settings.Splunk.Token)
	}
	if settings.BaseURL != "http://env.example.com" {
		t.Errorf("Expected env base URL override, got %s", settings.BaseURL)
	}
}

func TestEnvOverridesIgnoreBadPort(t *testing.T) {
	SettingsFile = filepath.Join(t.TempDir(), "missing.yaml")

	t.Setenv("SPLUNK_PORT", "not-a-number")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if settings.Splunk.Port != 8089 {
		t.Errorf("Expected default port to survive bad override, got %d", settings.Splunk.Port)
	}
}
