// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for moonchat.
//
// The view is a thin shell around a submit.Controller: it forwards keystrokes
// into the pending input buffer, starts submissions with Controller.Begin,
// runs the request as a tea.Cmd, and resolves it with Controller.Finish when
// the AnswerMsg arrives. Everything shown is read back from the transcript.
//
// # Layout
//
//	JUPITER MOONS EXPLORER v1.0
//	service status
//	+-----------------------------------+
//	| > JUPITER.DB:                     |
//	|   JUPITER MOONS DATABASE ...      |
//	| > QUERY:                          |
//	|   largest moon?                   |
//	+-----------------------------------+
//	suggestions (until the first query)
//	+---------------------------+ [SEND]
//	| > Enter your query ...    |
//	+---------------------------+
//	key help
//
// # Keys
//
//	enter        submit the input
//	alt+1..9     submit a suggested question
//	pgup/pgdown  scroll the transcript
//	ctrl+e       export the transcript
//	esc/ctrl+c   quit
package chat
