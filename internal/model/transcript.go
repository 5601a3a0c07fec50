// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
package model

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultGreeting is the synthetic assistant message every transcript starts with.
const DefaultGreeting = "JUPITER MOONS DATABASE ACCESSED. READY FOR QUERIES."

// Observer is notified synchronously after every append.
// index is the position of msg in the transcript.
type Observer func(index int, msg Message)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered, append-only log of one chat session.
// Insertion order is display order and is the context sent to the service.
//
// Append is the only mutation. Reads return copies, so a Transcript is safe
// to read while a submission is in flight.
type Transcript struct {
	mu        sync.RWMutex
	id        string
	createdAt time.Time
	messages  []Message
	observers []Observer
}

// NewTranscript creates a transcript seeded with the given greeting.
// An empty greeting falls back to DefaultGreeting.
func NewTranscript(greeting string) *Transcript {
	if greeting == "" {
		greeting = DefaultGreeting
	}
	return &Transcript{
		id:        uuid.NewString(),
		createdAt: time.Now(),
		messages:  []Message{NewMessage(RoleAssistant, greeting)},
	}
}

// ID returns the session identifier.
func (t *Transcript) ID() string {
	return t.id
}

// CreatedAt returns when the session started.
func (t *Transcript) CreatedAt() time.Time {
	return t.createdAt
}

// Append adds msg to the end of the transcript and notifies observers.
// It returns the new length.
func (t *Transcript) Append(msg Message) int {
	msg = msg.clone()

	t.mu.Lock()
	t.messages = append(t.messages, msg)
	index := len(t.messages) - 1
	observers := t.observers
	t.mu.Unlock()

	for _, obs := range observers {
		obs(index, msg.clone())
	}
	return index + 1
}

// Messages returns the full transcript in insertion order.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Message, len(t.messages))
	for i, m := range t.messages {
		out[i] = m.clone()
	}
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Last returns the most recent message.
func (t *Transcript) Last() Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.messages[len(t.messages)-1].clone()
}

// HasUserMessages reports whether anything beyond the greeting was exchanged.
func (t *Transcript) HasUserMessages() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, m := range t.messages {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}

// Subscribe registers an observer for future appends.
func (t *Transcript) Subscribe(obs Observer) {
	if obs == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	// Copy-on-write so Append can call observers without holding the lock.
	next := make([]Observer, len(t.observers), len(t.observers)+1)
	copy(next, t.observers)
	t.observers = append(next, obs)
}
