// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/moonchat/internal/model"
	"github.com/jeranaias/moonchat/internal/util"
)

// Generator is written into every export.
const Generator = "moonchat"

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export renders a document in the target format.
	Export(doc *Document) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// Document is a point-in-time snapshot of a transcript.
type Document struct {
	Session    string          `json:"session" yaml:"session"`
	CreatedAt  time.Time       `json:"created_at" yaml:"created_at"`
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at"`
	Generator  string          `json:"generator" yaml:"generator"`
	Messages   []model.Message `json:"messages" yaml:"messages"`
}

// FromTranscript snapshots tr.
func FromTranscript(tr *model.Transcript) *Document {
	if tr == nil {
		return nil
	}
	return &Document{
		Session:    tr.ID(),
		CreatedAt:  tr.CreatedAt(),
		ExportedAt: time.Now(),
		Generator:  Generator,
		Messages:   tr.Messages(),
	}
}

// Questions returns the number of user messages in the document.
func (d *Document) Questions() int {
	n := 0
	for _, m := range d.Messages {
		if m.Role == model.RoleUser {
			n++
		}
	}
	return n
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// IncludeMetadata adds a metadata header and per-answer annotations.
	IncludeMetadata bool

	// IncludeTimestamps includes per-message timestamps.
	IncludeTimestamps bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		IncludeMetadata:   true,
		IncludeTimestamps: true,
	}
}

var errNilDocument = errors.New("document is nil")

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// New returns the exporter for a format name: json, markdown (md) or yaml (yml).
func New(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		return NewJSONExporter(opts), nil
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "yaml", "yml":
		return NewYAMLExporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ForPath picks an exporter from the file extension of path, defaulting to Markdown.
func ForPath(path string, opts *Options) Exporter {
	if exp, err := New(filepath.Ext(path), opts); err == nil {
		return exp
	}
	return NewMarkdownExporter(opts)
}

// ToFile exports tr to path. When path is empty or an existing directory a
// timestamped file name is generated inside it. Returns the written path.
func ToFile(tr *model.Transcript, exporter Exporter, path string) (string, error) {
	doc := FromTranscript(tr)
	if doc == nil {
		return "", errNilDocument
	}

	content, err := exporter.Export(doc)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if path == "" {
		path = "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFilename(doc, exporter))
	}

	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// DefaultFilename returns moonchat_<date>_<time><ext> for the export time.
func DefaultFilename(doc *Document, exporter Exporter) string {
	return fmt.Sprintf("moonchat_%s%s", doc.ExportedAt.Format("20060102_150405"), exporter.FileExtension())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatShortTimestamp formats a timestamp for inline display.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
