// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts to JSON format.
// NOTE: JSON exports always include the complete document and ignore options.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter. Options are accepted for
// consistency with the other exporters.
func NewJSONExporter(_ *Options) *JSONExporter {
	return &JSONExporter{}
}

// Export converts a document to indented JSON.
func (e *JSONExporter) Export(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, errNilDocument
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
