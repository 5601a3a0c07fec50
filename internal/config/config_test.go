// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolateHome points the config directory at a temp dir and clears the
// MOONCHAT_* variables for the duration of the test.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{
		"MOONCHAT_BASE_URL", "MOONCHAT_TIMEOUT", "MOONCHAT_HEALTH_CHECK",
		"MOONCHAT_THEME", "MOONCHAT_LOG_LEVEL", "MOONCHAT_LOG_FORMAT",
	} {
		// Setenv registers the restore; Unsetenv makes the key truly absent.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Service.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("BaseURL = %q", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", cfg.Service.Timeout())
	}
	if cfg.Service.HealthCheck {
		t.Error("health check should be opt-in")
	}
	if cfg.Transcript.Greeting == "" || cfg.Transcript.FailureMessage == "" {
		t.Error("default transcript texts should be set")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid default config", func(c *Config) {}, ""},
		{"https base url", func(c *Config) { c.Service.BaseURL = "https://moons.example.com/api" }, ""},
		{"relative base url", func(c *Config) { c.Service.BaseURL = "/chat" }, "service.base_url"},
		{"ftp base url", func(c *Config) { c.Service.BaseURL = "ftp://moons.test" }, "service.base_url"},
		{"zero timeout", func(c *Config) { c.Service.TimeoutSecs = 0 }, "service.timeout_secs"},
		{"huge timeout", func(c *Config) { c.Service.TimeoutSecs = 3600 }, "service.timeout_secs"},
		{"invalid theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"too many suggestions", func(c *Config) { c.UI.Suggestions = make([]string, 10) }, "ui.suggestions"},
		{"invalid level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"invalid format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_SetDefaultsTrimsBaseURL(t *testing.T) {
	c := &Config{Service: ServiceConfig{BaseURL: "http://moons.test/"}}
	c.SetDefaults()

	if c.Service.BaseURL != "http://moons.test" {
		t.Errorf("BaseURL = %q", c.Service.BaseURL)
	}
	if c.Service.TimeoutSecs != 30 || c.UI.Theme != "dark" || c.Log.Level != "info" {
		t.Errorf("defaults not filled: %+v", c)
	}
}

func TestConfig_ApplyEnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("MOONCHAT_BASE_URL", "http://env.test:9000")
	t.Setenv("MOONCHAT_TIMEOUT", "5")
	t.Setenv("MOONCHAT_HEALTH_CHECK", "true")
	t.Setenv("MOONCHAT_THEME", "light")
	t.Setenv("MOONCHAT_LOG_LEVEL", "debug")

	c := Default()
	c.ApplyEnvOverrides()

	if c.Service.BaseURL != "http://env.test:9000" {
		t.Errorf("BaseURL = %q", c.Service.BaseURL)
	}
	if c.Service.TimeoutSecs != 5 {
		t.Errorf("TimeoutSecs = %d", c.Service.TimeoutSecs)
	}
	if !c.Service.HealthCheck {
		t.Error("HealthCheck should be enabled")
	}
	if c.UI.Theme != "light" || c.Log.Level != "debug" {
		t.Errorf("theme/level = %q/%q", c.UI.Theme, c.Log.Level)
	}
}

func TestConfig_ApplyEnvOverrides_BadTimeoutIgnored(t *testing.T) {
	isolateHome(t)
	t.Setenv("MOONCHAT_TIMEOUT", "soon")

	c := Default()
	c.ApplyEnvOverrides()
	if c.Service.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", c.Service.TimeoutSecs)
	}
}

func TestConfig_LoadFromPath_TOML(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[service]
base_url = "http://moons.test:8080/"
timeout_secs = 12

[ui]
theme = "light"
suggestions = ["Largest moon?"]
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Service.BaseURL != "http://moons.test:8080" {
		t.Errorf("BaseURL = %q", cfg.Service.BaseURL)
	}
	if cfg.Service.TimeoutSecs != 12 {
		t.Errorf("TimeoutSecs = %d", cfg.Service.TimeoutSecs)
	}
	if !reflect.DeepEqual(cfg.UI.Suggestions, []string{"Largest moon?"}) {
		t.Errorf("Suggestions = %v", cfg.UI.Suggestions)
	}
	// Untouched sections keep their defaults.
	if cfg.Transcript.Greeting != Default().Transcript.Greeting {
		t.Errorf("Greeting = %q", cfg.Transcript.Greeting)
	}
}

func TestConfig_LoadFromPath_JSON(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"service":{"base_url":"https://moons.test","health_check":true},"log":{"format":"json"}}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if !cfg.Service.HealthCheck || cfg.Log.Format != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfig_LoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	isolateHome(t)
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Service.BaseURL != Default().Service.BaseURL {
		t.Errorf("BaseURL = %q", cfg.Service.BaseURL)
	}
}

func TestConfig_LoadFromPath_Invalid(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[service]\nbase_url = \"nope\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected validation error for relative base_url")
	}
}

func TestConfig_LoadDotEnv(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".moonchat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MOONCHAT_LOG_FORMAT=json\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want value from .env", cfg.Log.Format)
	}
}

func TestConfig_SaveAndReload(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Service.BaseURL = "http://saved.test"
	cfg.UI.Markdown = true
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 && os.PathSeparator == '/' {
		t.Errorf("perm = %o, want 600", perm)
	}

	back, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if back.Service.BaseURL != "http://saved.test" || !back.UI.Markdown {
		t.Errorf("reloaded = %+v", back)
	}
}

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("service.base_url")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != "http://127.0.0.1:8000" {
		t.Errorf("Get('service.base_url') = %v", val)
	}

	if err := cfg.Set("service.timeout_secs", "45"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Service.TimeoutSecs != 45 {
		t.Errorf("TimeoutSecs = %d", cfg.Service.TimeoutSecs)
	}

	if err := cfg.Set("service.health_check", "yes"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !cfg.Service.HealthCheck {
		t.Error("HealthCheck should be true")
	}

	if err := cfg.Set("ui.suggestions", "Io?, Europa? ,"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.UI.Suggestions, []string{"Io?", "Europa?"}) {
		t.Errorf("Suggestions = %v", cfg.UI.Suggestions)
	}

	if err := cfg.Set("service.timeout_secs", "soon"); err == nil {
		t.Error("Set() with non-integer should fail")
	}
	if _, err := cfg.Get("invalid.key"); err == nil {
		t.Error("Get() with invalid key should return error")
	}
	if _, err := cfg.Get("service"); err == nil {
		t.Error("Get() on a section should return error")
	}
}

func TestConfig_GetAllKeysResolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}
}
