// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Fixed texts of the terminal look.
const (
	Title       = "JUPITER MOONS EXPLORER v1.0"
	Placeholder = "Enter your query about Jupiter's moons..."
	Processing  = "PROCESSING..."
	SendLabel   = "SEND"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// FRAME
	// ==========================================================================

	Header     lipgloss.Style
	Transcript lipgloss.Style
	Footer     lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserLabel      lipgloss.Style
	UserText       lipgloss.Style
	AssistantLabel lipgloss.Style
	AssistantText  lipgloss.Style
	ErrorText      lipgloss.Style
	ContextBadge   lipgloss.Style
	Timestamp      lipgloss.Style

	// ==========================================================================
	// INPUT
	// ==========================================================================

	InputBox         lipgloss.Style
	InputBoxDisabled lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	SendButton       lipgloss.Style
	BusyButton       lipgloss.Style
	Spinner          lipgloss.Style

	// ==========================================================================
	// STATUS AND HINTS
	// ==========================================================================

	StatusOnline  lipgloss.Style
	StatusOffline lipgloss.Style
	StatusUnknown lipgloss.Style
	SuggestionKey lipgloss.Style
	Suggestion    lipgloss.Style
	Hint          lipgloss.Style
	Notice        lipgloss.Style
}

// NewTheme creates a theme for mode "dark", "light" or "auto". Forcing a
// mode overrides the background detection for every adaptive color.
func NewTheme(mode string) *Theme {
	var isDark bool
	switch strings.ToLower(mode) {
	case "light":
		isDark = false
	case "dark":
		isDark = true
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Frame
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Align(lipgloss.Center)

	t.Transcript = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Messages
	t.UserLabel = lipgloss.NewStyle().
		Foreground(Yellow).
		Bold(true)

	t.UserText = lipgloss.NewStyle().
		Foreground(Yellow).
		MarginLeft(2)

	t.AssistantLabel = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	t.AssistantText = lipgloss.NewStyle().
		Foreground(Green).
		MarginLeft(2)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose).
		MarginLeft(2)

	t.ContextBadge = lipgloss.NewStyle().
		Foreground(GreenDim).
		Italic(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Input
	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.InputBoxDisabled = t.InputBox.
		BorderForeground(TextMuted)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(Green)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SendButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(CyanDeep).
		Bold(true).
		Padding(0, 2)

	t.BusyButton = t.SendButton.
		Background(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Cyan)

	// Status and hints
	t.StatusOnline = lipgloss.NewStyle().Foreground(Green).Bold(true)
	t.StatusOffline = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.StatusUnknown = lipgloss.NewStyle().Foreground(Amber)

	t.SuggestionKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Suggestion = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Notice = lipgloss.NewStyle().
		Foreground(Amber)
}

// Label renders the role prefix of a message.
func (t *Theme) Label(user bool, label string) string {
	if user {
		return t.UserLabel.Render(label)
	}
	return t.AssistantLabel.Render(label)
}
