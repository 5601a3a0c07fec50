// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/moonchat/internal/model"
	"github.com/jeranaias/moonchat/internal/ui/styles"
	"github.com/jeranaias/moonchat/internal/util"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================

func (m Model) renderChat() string {
	parts := []string{
		m.renderHeader(),
		m.theme.Transcript.Width(m.width - 2).Render(m.viewport.View()),
	}
	if m.showSuggestions() {
		parts = append(parts, m.renderSuggestions())
	}
	parts = append(parts, m.renderInput(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	title := m.theme.Header.Width(m.width).Render(styles.Title)

	var status string
	switch m.healthState {
	case healthChecking:
		status = m.theme.StatusUnknown.Render("SERVICE: CHECKING...")
	case healthOnline:
		status = m.theme.StatusOnline.Render("SERVICE: ONLINE")
	case healthOffline:
		status = m.theme.StatusOffline.Render("SERVICE: OFFLINE")
	default:
		status = m.theme.StatusUnknown.Render("SERVICE: NOT CHECKED")
	}
	if m.serviceURL != "" {
		room := m.width - lipgloss.Width(status) - 2
		status += "  " + m.theme.Hint.Render(util.TruncateWidth(m.serviceURL, room))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, status),
	)
}

// renderTranscript renders every message for the viewport.
func (m Model) renderTranscript() string {
	width := m.viewport.Width
	msgs := m.ctrl.Transcript().Messages()

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg, width))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderMessage(msg model.Message, width int) string {
	user := msg.Role == model.RoleUser

	var sb strings.Builder
	sb.WriteString(m.theme.Label(user, msg.Role.Label()))
	sb.WriteString(" ")
	sb.WriteString(m.theme.Timestamp.Render(msg.Timestamp.Format("15:04:05")))
	sb.WriteString("\n")

	bodyWidth := max(width-2, 1)
	switch {
	case user:
		sb.WriteString(m.theme.UserText.Width(bodyWidth).Render(msg.Content))
	case msg.IsError():
		sb.WriteString(m.theme.ErrorText.Width(bodyWidth).Render(msg.Content))
	default:
		sb.WriteString(m.renderAnswer(msg.Content, bodyWidth))
	}

	if !user && m.showContext && msg.Metadata.ContextUsed() {
		sb.WriteString("\n")
		sb.WriteString(m.theme.ContextBadge.Render(contextBadge(msg.Metadata.ContextCount())))
	}
	return sb.String()
}

// renderAnswer renders an answer as markdown when enabled, plain otherwise.
func (m Model) renderAnswer(content string, width int) string {
	if m.markdown && m.renderer != nil {
		if out, err := m.renderer.Render(content); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return m.theme.AssistantText.Width(width).Render(content)
}

func contextBadge(n int) string {
	if n == 1 {
		return "  [context: 1 source]"
	}
	return fmt.Sprintf("  [context: %d sources]", n)
}

func (m Model) renderSuggestions() string {
	lines := []string{m.theme.Hint.Render("SUGGESTED QUERIES:")}
	for i, s := range m.suggestions {
		k := m.theme.SuggestionKey.Render(fmt.Sprintf("alt+%d", i+1))
		text := util.TruncateWidth(util.OneLine(s), m.width-8)
		lines = append(lines, " "+k+" "+m.theme.Suggestion.Render(text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderInput() string {
	busy := m.ctrl.Busy()

	box := m.theme.InputBox
	if busy {
		box = m.theme.InputBoxDisabled
	}
	bw := m.buttonWidth()
	// width excludes the border
	boxed := box.Width(max(m.width-bw-3, 12)).Render(m.input.View())

	var button string
	if busy {
		button = m.theme.BusyButton.Width(bw).Align(lipgloss.Center).
			Render(m.spinner.View() + " " + styles.Processing)
	} else {
		button = m.theme.SendButton.Width(bw).Align(lipgloss.Center).
			Render(styles.SendLabel)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, boxed, " ", button)
}

// buttonWidth is the width of the widest button label, spinner included.
func (m Model) buttonWidth() int {
	return lipgloss.Width(m.theme.BusyButton.Render("- " + styles.Processing))
}

func (m Model) renderFooter() string {
	if m.notice != "" {
		return m.theme.Notice.Render(util.TruncateWidth(m.notice, m.width))
	}
	help := HelpLine(m.keys.ShortHelp())
	if m.showSuggestions() {
		help = HelpLine([]key.Binding{m.keys.Submit, m.keys.Suggest, m.keys.Export, m.keys.Quit})
	}
	return m.theme.Footer.Render(util.TruncateWidth(help, m.width))
}
