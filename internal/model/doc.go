// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
//
// # Key Types
//
//   - Transcript: Ordered, append-only message log for one session
//   - Message: Single entry with role, content, and optional metadata
//   - Metadata: Open-ended map; context_used marks grounded answers
//   - Role: Message role enumeration (user, assistant)
//
// # Usage
//
//	t := model.NewTranscript("")
//	t.Subscribe(func(i int, m model.Message) { redraw() })
//	t.Append(model.NewUserMessage("largest moon?"))
//	for _, m := range t.Messages() {
//	    fmt.Println(m.Role.Label(), m.Content)
//	}
package model
