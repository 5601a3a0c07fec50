// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/moonchat/internal/export"
	"github.com/jeranaias/moonchat/internal/model"
	"github.com/jeranaias/moonchat/internal/submit"
)

// healthTimeout bounds the pre-flight check shown in the header.
const healthTimeout = 10 * time.Second

// HealthChecker is the pre-flight check the header status comes from.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// AskCmd runs a pending submission off the update loop. The client's own
// timeout bounds the call, so it always resolves.
func AskCmd(p *submit.Pending) tea.Cmd {
	return func() tea.Msg {
		return AnswerMsg{Result: p.Run(context.Background())}
	}
}

// CheckHealthCmd creates a command that checks the service health.
func CheckHealthCmd(checker HealthChecker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()

		err := checker.CheckHealth(ctx)
		return HealthStatusMsg{Healthy: err == nil, Error: err}
	}
}

// ExportCmd writes the transcript to dest with exp.
func ExportCmd(tr *model.Transcript, exp export.Exporter, dest string) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ToFile(tr, exp, dest)
		return ExportedMsg{Path: path, Error: err}
	}
}
