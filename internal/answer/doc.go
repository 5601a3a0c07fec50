// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package answer provides the HTTP client for the remote chat service.
//
// The client turns a question plus the prior transcript into exactly one
// POST /chat call and normalizes the outcome into either a ChatResponse or
// a classified *ClientError.
//
// # Key Types
//
//   - Client: HTTP client for the chat service
//   - ChatRequest / ChatResponse: Wire bodies for POST /chat
//   - ClientError: Failure with Kind network or service
//
// # Usage
//
//	client := answer.NewClientWithConfig(&answer.ClientConfig{
//	    BaseURL: "http://127.0.0.1:8000",
//	    Timeout: 30 * time.Second,
//	})
//	resp, err := client.Ask(ctx, "largest moon?", transcript.Messages())
//	if answer.IsNetwork(err) {
//	    // transport never completed
//	}
//
// # Failure Kinds
//
// A transport that cannot complete the exchange (timeout, refused connection,
// DNS failure) yields KindNetwork. A reachable service answering with a
// non-2xx status yields KindService, with Detail taken from the body's
// "detail" field when present. No retries are attempted.
package answer
