// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a snapshot of the current transcript to disk.
//
// Exports are one-way: nothing in moonchat reads them back, so a session
// always starts from a fresh transcript.
//
// # Key Types
//
//   - Document: Snapshot of a transcript with session metadata
//   - Exporter: Format interface implemented by each exporter
//   - Options: Metadata and timestamp toggles
//
// # Supported Formats
//
//   - JSON: Machine-readable with full metadata
//   - Markdown: Human-readable with YAML frontmatter
//   - YAML: Machine-readable, diff friendly
//
// # Usage
//
//	exp, err := export.New("markdown", nil)
//	if err != nil {
//	    return err
//	}
//	path, err := export.ToFile(transcript, exp, "session.md")
package export
