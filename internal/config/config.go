// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/moonchat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete moonchat configuration.
type Config struct {
	// Service is the remote question-answering endpoint.
	Service ServiceConfig `toml:"service" json:"service"`

	// Transcript holds the fixed texts written into the transcript.
	Transcript TranscriptConfig `toml:"transcript" json:"transcript"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// ServiceConfig describes how to reach the answer service.
type ServiceConfig struct {
	// BaseURL is the service root; /chat and /health are resolved against it.
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs bounds a single request, connection through body.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// HealthCheck runs GET /health before every chat request.
	HealthCheck bool `toml:"health_check" json:"health_check"`
}

// TranscriptConfig contains the synthetic transcript texts.
type TranscriptConfig struct {
	// Greeting is the assistant entry every new transcript starts with.
	Greeting string `toml:"greeting" json:"greeting"`
	// FailureMessage is appended when a request fails without a service detail.
	FailureMessage string `toml:"failure_message" json:"failure_message"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme" json:"theme"`
	// Markdown renders answers with glamour.
	Markdown bool `toml:"markdown" json:"markdown"`
	// ShowContext marks answers that were grounded in retrieved context.
	ShowContext bool `toml:"show_context" json:"show_context"`
	// Suggestions are shortcut questions bound to alt+1..9.
	Suggestions []string `toml:"suggestions" json:"suggestions"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
	// File receives log output; empty means stderr for commands and nowhere for the TUI.
	File string `toml:"file" json:"file"`
}

// Timeout returns the request timeout as a duration.
func (s ServiceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL:     "http://127.0.0.1:8000",
			TimeoutSecs: 30,
			HealthCheck: false,
		},

		Transcript: TranscriptConfig{
			Greeting:       "JUPITER MOONS DATABASE ACCESSED. READY FOR QUERIES.",
			FailureMessage: "ERROR: Connection to Jupiter database failed. Please retry.",
		},

		UI: UIConfig{
			Theme:       "dark",
			Markdown:    false,
			ShowContext: true,
			Suggestions: []string{
				"What is the largest moon of Jupiter?",
				"Which moon has active volcanoes?",
				"Does Europa have an ocean?",
				"How many moons does Jupiter have?",
			},
		},

		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the moonchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".moonchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// A .env file in the working directory or the config directory is loaded
// before environment overrides are applied.
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg := Default()
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if loadErr != nil {
		// A broken file leaves cfg half-decoded; start again from defaults.
		cfg = Default()
	}
	cfg, err := finish(cfg)
	if err != nil {
		return nil, err
	}
	// Return defaults with any load error for informational purposes.
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full validation.
// A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if strings.HasSuffix(path, ".json") {
			err = LoadJSON(cfg, path)
		} else {
			err = LoadTOML(cfg, path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}
	return finish(cfg)
}

// finish applies environment overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadDotEnv loads .env files into the process environment. Variables that
// are already set win. Missing files are not an error.
func LoadDotEnv() error {
	candidates := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}
	for _, path := range candidates {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to a TOML file atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# moonchat configuration file\n")
	buf.WriteString("# Generated by moonchat - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Service
	// ==========================================================================

	if u, err := url.Parse(c.Service.BaseURL); err != nil {
		errs = append(errs, ValidationError{
			Field:   "service.base_url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "service.base_url",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", c.Service.BaseURL),
		})
	}

	if c.Service.TimeoutSecs < 1 || c.Service.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "service.timeout_secs",
			Message: fmt.Sprintf("must be 1-600, got %d", c.Service.TimeoutSecs),
		})
	}

	// ==========================================================================
	// UI
	// ==========================================================================

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(c.UI.Suggestions) > 9 {
		errs = append(errs, ValidationError{
			Field:   "ui.suggestions",
			Message: fmt.Sprintf("at most 9 suggestions can be bound, got %d", len(c.UI.Suggestions)),
		})
	}

	// ==========================================================================
	// Log
	// ==========================================================================

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	validFormats := map[string]bool{"text": true, "json": true, "logfmt": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json, logfmt", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value configuration fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Service.BaseURL == "" {
		c.Service.BaseURL = defaults.Service.BaseURL
	}
	c.Service.BaseURL = strings.TrimRight(c.Service.BaseURL, "/")
	if c.Service.TimeoutSecs == 0 {
		c.Service.TimeoutSecs = defaults.Service.TimeoutSecs
	}

	if c.Transcript.Greeting == "" {
		c.Transcript.Greeting = defaults.Transcript.Greeting
	}
	if c.Transcript.FailureMessage == "" {
		c.Transcript.FailureMessage = defaults.Transcript.FailureMessage
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - MOONCHAT_BASE_URL: overrides service.base_url
//   - MOONCHAT_TIMEOUT: overrides service.timeout_secs
//   - MOONCHAT_HEALTH_CHECK: "1" or "true" enables the pre-flight check
//   - MOONCHAT_THEME: overrides ui.theme
//   - MOONCHAT_LOG_LEVEL: overrides log.level
//   - MOONCHAT_LOG_FORMAT: overrides log.format
func (c *Config) ApplyEnvOverrides() {
	if base := os.Getenv("MOONCHAT_BASE_URL"); base != "" {
		c.Service.BaseURL = base
	}

	// An unparsable timeout is ignored rather than zeroing the setting.
	if timeout := os.Getenv("MOONCHAT_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			c.Service.TimeoutSecs = secs
		}
	}

	if hc := os.Getenv("MOONCHAT_HEALTH_CHECK"); hc != "" {
		c.Service.HealthCheck = parseBool(hc)
	}

	if theme := os.Getenv("MOONCHAT_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if level := os.Getenv("MOONCHAT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if format := os.Getenv("MOONCHAT_LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "service.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "service.base_url").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks the struct tree along the dotted key.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strings.TrimSpace(strVal), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(strVal))
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, item := range strings.Split(strVal, ",") {
					if item = strings.TrimSpace(item); item != "" {
						items = append(items, item)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"service.base_url",
		"service.timeout_secs",
		"service.health_check",
		"transcript.greeting",
		"transcript.failure_message",
		"ui.theme",
		"ui.markdown",
		"ui.show_context",
		"ui.suggestions",
		"log.level",
		"log.format",
		"log.file",
	}
}
