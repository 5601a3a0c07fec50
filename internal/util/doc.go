// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across moonchat.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: display-width aware truncation for terminal layouts
//   - OneLine: flatten multi-line text for previews
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Fit a question preview into the header
//	preview := util.TruncateWidth(util.OneLine(question), 40)
//
//	// Write exports atomically to prevent partial files
//	err := util.AtomicWriteFile(path, data, 0644)
package util
