// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/moonchat/internal/export"
	"github.com/jeranaias/moonchat/internal/logging"
	"github.com/jeranaias/moonchat/internal/submit"
	"github.com/jeranaias/moonchat/internal/ui/styles"
)

// =============================================================================
// SERVICE STATUS
// =============================================================================

type healthState int

const (
	healthUnchecked healthState = iota
	healthChecking
	healthOnline
	healthOffline
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures the chat view.
type Options struct {
	Theme *styles.Theme
	// Health enables the header status check. Nil leaves it unchecked.
	Health HealthChecker
	// ServiceURL is shown next to the status.
	ServiceURL string
	// Suggestions are bound to alt+1..9 until the first query.
	Suggestions []string
	// Markdown renders answers with glamour.
	Markdown bool
	// ShowContext marks answers grounded in retrieved context.
	ShowContext bool
	// ExportDir receives ctrl+e exports. Empty means the working directory.
	ExportDir string
	Logger    *log.Logger
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctrl  *submit.Controller
	theme *styles.Theme
	keys  KeyMap

	// Dimensions
	width  int
	height int
	ready  bool

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	// rendererWidth is the wrap width renderer was built for.
	rendererWidth int

	health      HealthChecker
	healthState healthState
	serviceURL  string

	suggestions []string
	markdown    bool
	showContext bool
	exportDir   string

	// notice replaces the key help until the next keystroke.
	notice string

	logger *log.Logger
}

// New creates a chat view driving ctrl.
func New(ctrl *submit.Controller, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = styles.Placeholder
	ti.CharLimit = 2000
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = theme.InputText
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.SetValue(ctrl.Input())
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = theme.Spinner

	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	suggestions := opts.Suggestions
	if len(suggestions) > 9 {
		suggestions = suggestions[:9]
	}

	m := Model{
		ctrl:        ctrl,
		theme:       theme,
		keys:        DefaultKeyMap(),
		viewport:    viewport.New(80, 20),
		input:       ti,
		spinner:     sp,
		health:      opts.Health,
		serviceURL:  opts.ServiceURL,
		suggestions: suggestions,
		markdown:    opts.Markdown,
		showContext: opts.ShowContext,
		exportDir:   exportDir,
		logger:      logging.OrDiscard(opts.Logger).With("component", "tui"),
	}
	if m.health != nil {
		m.healthState = healthChecking
	}
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.health != nil {
		cmds = append(cmds, CheckHealthCmd(m.health))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case AnswerMsg:
		return m.handleAnswer(msg)

	case HealthStatusMsg:
		if msg.Healthy {
			m.healthState = healthOnline
		} else {
			m.healthState = healthOffline
		}
		m.logger.Debug("health checked", "healthy", msg.Healthy, "err", msg.Error)
		return m, nil

	case ExportedMsg:
		if msg.Error != nil {
			m.notice = "EXPORT FAILED: " + msg.Error.Error()
			m.logger.Warn("export failed", "err", msg.Error)
		} else {
			m.notice = "EXPORTED TO " + msg.Path
			m.logger.Info("transcript exported", "path", msg.Path)
		}
		return m, nil

	case spinner.TickMsg:
		// Let the tick chain die once the answer is in.
		if !m.ctrl.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderChat()
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.layout()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Export):
		exp := export.NewMarkdownExporter(nil)
		m.notice = "EXPORTING..."
		return m, ExportCmd(m.ctrl.Transcript(), exp, m.exportDir)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	// The input is disabled while a submission is in flight.
	if m.ctrl.Busy() {
		return m, nil
	}

	if idx, ok := suggestionIndex(msg.String()); ok {
		if m.showSuggestions() && idx < len(m.suggestions) {
			return m.submit(m.suggestions[idx])
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Submit) {
		return m.submit(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetInput(m.input.Value())
	return m, cmd
}

// submit starts a submission. Rejected input leaves everything as it was.
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	pending, err := m.ctrl.Begin(text)
	if err != nil {
		if !errors.Is(err, submit.ErrEmptyInput) && !errors.Is(err, submit.ErrBusy) {
			m.logger.Error("submit failed", "err", err)
		}
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	// Suggestions disappear with the first query, which frees rows.
	m.layout()

	return m, tea.Batch(AskCmd(pending), m.spinner.Tick)
}

func (m Model) handleAnswer(msg AnswerMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.ctrl.Finish(msg.Result); !ok {
		return m, nil
	}
	m.refresh()
	return m, m.input.Focus()
}

// =============================================================================
// LAYOUT
// =============================================================================

// Fixed row counts of the frame around the transcript.
const (
	transcriptChrome = 2 // top and bottom border
	inputRows        = 3 // bordered single line
	footerRows       = 1
)

// layout sizes the components for the current window and re-renders.
func (m *Model) layout() {
	if !m.ready {
		return
	}

	reserved := lipgloss.Height(m.renderHeader()) + transcriptChrome + inputRows + footerRows
	if m.showSuggestions() {
		reserved += lipgloss.Height(m.renderSuggestions())
	}

	m.viewport.Width = max(m.width-4, 10)
	m.viewport.Height = max(m.height-reserved, 3)

	// box border and padding (4), prompt (2), cursor (1), gap (1)
	m.input.Width = max(m.width-m.buttonWidth()-8, 10)

	if m.markdown && (m.renderer == nil || m.rendererWidth != m.viewport.Width) {
		m.renderer = newRenderer(m.theme.IsDark, m.viewport.Width-2)
		m.rendererWidth = m.viewport.Width
	}
	m.refresh()
}

// refresh re-renders the transcript and follows the newest entry.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) showSuggestions() bool {
	return len(m.suggestions) > 0 && !m.ctrl.Transcript().HasUserMessages()
}

func newRenderer(dark bool, width int) *glamour.TermRenderer {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return nil
	}
	return r
}
