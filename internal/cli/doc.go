// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the moonchat command tree.
//
// Without a subcommand moonchat opens the full-screen chat. The subcommands
// are:
//
//	ask <question>     one question against a fresh session
//	chat               line-mode chat with input history
//	health             GET /health pre-flight
//	config             show, get, set and locate the configuration
//	version            build information
//
// Every command shares the persistent flags --config, --url, --timeout,
// --verbose and --log-file. Errors are printed once by Execute, which also
// maps them to the exit status.
package cli
