// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package submit mediates one user question through to a transcript update.
//
// The Controller is a two-state machine:
//
//	Idle --Submit(text)--> Submitting --success/failure--> Idle
//
// Entering Submitting appends the user message and clears the pending input.
// Leaving it appends exactly one assistant message: the answer, or a fixed
// human-readable failure string. A Submit while Submitting, or with blank
// text, is rejected without touching the transcript or the network.
//
// Event loops that must not block (bubbletea) use the two-phase form:
//
//	p, err := ctrl.Begin(text)   // on the UI thread
//	res := p.Run(ctx)            // in a tea.Cmd
//	ctrl.Finish(res)             // back on the UI thread
package submit
