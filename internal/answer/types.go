// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package answer provides the HTTP client for the remote chat service.
package answer

import (
	"bytes"
	"encoding/json"

	"github.com/jeranaias/moonchat/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Message is the wire form of a transcript entry.
type Message struct {
	Role     string         `json:"role"`               // "user" or "assistant"
	Content  string         `json:"content"`            // Message text
	Metadata map[string]any `json:"metadata,omitempty"` // context_used and friends
}

// ChatRequest is the request body for POST /chat.
// Messages is the transcript before the question was appended.
type ChatRequest struct {
	Question string    `json:"question"`
	Messages []Message `json:"messages"`
}

// NewChatRequest builds a request from a question and the prior transcript.
// Local-only fields (id, timestamp) are dropped.
func NewChatRequest(question string, history []model.Message) ChatRequest {
	msgs := make([]Message, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, Message{
			Role:     m.Role.String(),
			Content:  m.Content,
			Metadata: m.Metadata,
		})
	}
	return ChatRequest{Question: question, Messages: msgs}
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the success body of POST /chat.
type ChatResponse struct {
	Answer  string   `json:"answer"`
	Context []string `json:"context,omitempty"`
}

// ContextUsed reports whether the answer was grounded in retrieved context.
// An empty context list counts as not used.
func (r *ChatResponse) ContextUsed() bool {
	return r != nil && len(r.Context) > 0
}

// ToMessage converts the response into the assistant transcript entry.
func (r *ChatResponse) ToMessage() model.Message {
	return model.NewAssistantMessage(r.Answer, r.ContextUsed(), len(r.Context))
}

// errorBody is the failure body of the service. detail is usually a string
// but validation errors carry a list of objects.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// detailText extracts a human-readable detail from an error body.
// Returns "" when the body carries no usable detail.
func detailText(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}
	if bytes.Equal(eb.Detail, []byte("null")) {
		return ""
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, eb.Detail); err != nil {
		return ""
	}
	return compact.String()
}
