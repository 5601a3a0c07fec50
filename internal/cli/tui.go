// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/moonchat/internal/ui/chat"
	"github.com/jeranaias/moonchat/internal/ui/styles"
)

// runTUI starts the full-screen chat.
func (a *app) runTUI(cmd *cobra.Command) error {
	client := a.newClient()
	ctrl := a.newController(client)

	opts := chat.Options{
		Theme:       styles.NewTheme(a.cfg.UI.Theme),
		ServiceURL:  client.BaseURL(),
		Suggestions: a.cfg.UI.Suggestions,
		Markdown:    a.cfg.UI.Markdown,
		ShowContext: a.cfg.UI.ShowContext,
		Logger:      a.logger,
	}
	if a.cfg.Service.HealthCheck {
		opts.Health = client
	}

	p := tea.NewProgram(
		chat.New(ctrl, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return NewCommandError("moonchat", "run", "terminal UI failed", err)
	}
	a.logger.Info("session closed", "entries", ctrl.Transcript().Len())
	return nil
}
