// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
package model

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Label returns the transcript label shown in front of a message.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "> QUERY:"
	case RoleAssistant:
		return "> JUPITER.DB:"
	default:
		return "> " + string(r) + ":"
	}
}

// =============================================================================
// METADATA
// =============================================================================

// Well-known metadata keys.
const (
	MetaContextUsed  = "context_used"
	MetaContextCount = "context_count"
	MetaErrorKind    = "error_kind"
)

// Metadata is the open-ended key/value map attached to a message.
// The service only relies on context_used.
type Metadata map[string]any

// ContextUsed reports whether the answer was grounded in retrieved context.
func (m Metadata) ContextUsed() bool {
	v, ok := m[MetaContextUsed].(bool)
	return ok && v
}

// ContextCount returns the number of context snippets behind an answer.
// JSON round-trips turn ints into float64, so both are accepted.
func (m Metadata) ContextCount() int {
	switch v := m[MetaContextCount].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// ErrorKind returns the failure kind recorded on a synthetic error message.
func (m Metadata) ErrorKind() string {
	s, _ := m[MetaErrorKind].(string)
	return s
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single transcript entry. Once appended to a Transcript it is
// never modified.
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	Metadata  Metadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message carrying an answer.
func NewAssistantMessage(content string, contextUsed bool, contextCount int) Message {
	msg := NewMessage(RoleAssistant, content)
	msg.Metadata = Metadata{
		MetaContextUsed:  contextUsed,
		MetaContextCount: contextCount,
	}
	return msg
}

// NewErrorMessage creates the synthetic assistant message appended when a
// submission fails.
func NewErrorMessage(content, kind string) Message {
	msg := NewMessage(RoleAssistant, content)
	if kind != "" {
		msg.Metadata = Metadata{MetaErrorKind: kind}
	}
	return msg
}

// IsError reports whether the message stands in for a failed submission.
func (m Message) IsError() bool {
	return m.Metadata.ErrorKind() != ""
}

// clone returns a copy whose metadata map is not shared with m.
func (m Message) clone() Message {
	if m.Metadata != nil {
		m.Metadata = maps.Clone(m.Metadata)
	}
	return m
}
