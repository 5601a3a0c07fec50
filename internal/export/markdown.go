// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/moonchat/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// frontmatter is the YAML header of a Markdown export.
type frontmatter struct {
	Title     string `yaml:"title"`
	Session   string `yaml:"session"`
	Date      string `yaml:"date"`
	Messages  int    `yaml:"messages"`
	Questions int    `yaml:"questions"`
	Exported  string `yaml:"exported"`
	Generator string `yaml:"generator"`
}

// Export converts a document to Markdown.
func (e *MarkdownExporter) Export(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, errNilDocument
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		// Marshalled rather than hand-written so titles cannot break the header.
		header, err := yaml.Marshal(frontmatter{
			Title:     "Jupiter moons session",
			Session:   doc.Session,
			Date:      doc.CreatedAt.Format(time.RFC3339),
			Messages:  len(doc.Messages),
			Questions: doc.Questions(),
			Exported:  doc.ExportedAt.Format(time.RFC3339),
			Generator: doc.Generator,
		})
		if err != nil {
			return nil, fmt.Errorf("encode frontmatter: %w", err)
		}
		sb.WriteString("---\n")
		sb.Write(header)
		sb.WriteString("---\n\n")
	}

	sb.WriteString("# Jupiter moons session\n\n")

	if e.options.IncludeMetadata {
		sb.WriteString(fmt.Sprintf("- **Session**: %s\n", doc.Session))
		sb.WriteString(fmt.Sprintf("- **Started**: %s\n", formatTimestamp(doc.CreatedAt)))
		sb.WriteString(fmt.Sprintf("- **Questions**: %d\n", doc.Questions()))
		sb.WriteString("\n---\n\n")
	}

	for i, msg := range doc.Messages {
		if e.options.IncludeTimestamps && !msg.Timestamp.IsZero() {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n", escapeMarkdown(msg.Role.Label()), formatShortTimestamp(msg.Timestamp)))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", escapeMarkdown(msg.Role.Label())))
		}

		sb.WriteString(strings.TrimSpace(msg.Content))
		sb.WriteString("\n\n")

		if e.options.IncludeMetadata {
			if note := annotation(msg); note != "" {
				sb.WriteString(note)
				sb.WriteString("\n\n")
			}
		}

		if i < len(doc.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from moonchat on %s*\n",
		doc.ExportedAt.Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// annotation describes how an assistant message came about.
func annotation(msg model.Message) string {
	if msg.Role != model.RoleAssistant || msg.Metadata == nil {
		return ""
	}
	if kind := msg.Metadata.ErrorKind(); kind != "" {
		return fmt.Sprintf("<sub>Failed: %s</sub>", kind)
	}
	if msg.Metadata.ContextUsed() {
		if n := msg.Metadata.ContextCount(); n > 0 {
			return fmt.Sprintf("<sub>Context: %d sources</sub>", n)
		}
		return "<sub>Context: used</sub>"
	}
	return ""
}

// escapeMarkdown escapes characters that would break formatting in headings.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	s = strings.ReplaceAll(s, ">", "\\>")
	return s
}
