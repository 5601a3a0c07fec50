// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for moonchat.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServiceConfig: Answer service location, timeout and health pre-flight
//   - TranscriptConfig: Greeting and failure texts
//   - UIConfig: Theme, markdown rendering and suggestion shortcuts
//   - LogConfig: Structured logger level, format and destination
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (MOONCHAT_*), including those from .env
//   - ~/.moonchat/config.toml
//   - ~/.moonchat/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := answer.NewClientWithConfig(&answer.ClientConfig{
//	    BaseURL: cfg.Service.BaseURL,
//	    Timeout: cfg.Service.Timeout(),
//	})
package config
