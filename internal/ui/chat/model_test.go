// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/moonchat/internal/answer"
	"github.com/jeranaias/moonchat/internal/model"
	"github.com/jeranaias/moonchat/internal/submit"
	"github.com/jeranaias/moonchat/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

type stubAsker struct {
	calls int
	resp  *answer.ChatResponse
	err   error
}

func (s *stubAsker) Ask(_ context.Context, _ string, _ []model.Message) (*answer.ChatResponse, error) {
	s.calls++
	return s.resp, s.err
}

type stubHealth struct{ err error }

func (s stubHealth) CheckHealth(context.Context) error { return s.err }

func newTestModel(t *testing.T, asker submit.Asker, opts Options) (Model, *submit.Controller) {
	t.Helper()
	ctrl := submit.New(model.NewTranscript(""), asker, submit.Options{})
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme("dark")
	}
	m := New(ctrl, opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), ctrl
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

// drain runs cmd and any batch it expands to, returning every message.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findAnswer(t *testing.T, msgs []tea.Msg) AnswerMsg {
	t.Helper()
	for _, msg := range msgs {
		if a, ok := msg.(AnswerMsg); ok {
			return a
		}
	}
	t.Fatalf("no AnswerMsg in %v", msgs)
	return AnswerMsg{}
}

// =============================================================================
// SUBMISSION FLOW
// =============================================================================

func TestModel_SubmitAndAnswer(t *testing.T) {
	asker := &stubAsker{resp: &answer.ChatResponse{Answer: "Ganymede", Context: []string{"a", "b"}}}
	m, ctrl := newTestModel(t, asker, Options{ShowContext: true})

	m = typeText(t, m, "Largest moon?")
	assert.Equal(t, "Largest moon?", ctrl.Input())

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, ctrl.Busy())
	assert.Equal(t, 2, ctrl.Transcript().Len())
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), styles.Processing)

	m, _ = send(t, m, findAnswer(t, drain(cmd)))

	assert.False(t, ctrl.Busy())
	assert.Equal(t, 1, asker.calls)
	msgs := ctrl.Transcript().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Ganymede", msgs[2].Content)
	assert.True(t, msgs[2].Metadata.ContextUsed())
	assert.True(t, m.input.Focused())

	view := m.View()
	assert.Contains(t, view, "Ganymede")
	assert.Contains(t, view, "[context: 2 sources]")
	assert.Contains(t, view, styles.SendLabel)
}

func TestModel_FailureAppendsErrorText(t *testing.T) {
	asker := &stubAsker{err: &answer.ClientError{Kind: answer.KindNetwork, Message: "refused"}}
	m, ctrl := newTestModel(t, asker, Options{})

	m = typeText(t, m, "x")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, findAnswer(t, drain(cmd)))

	last := ctrl.Transcript().Last()
	assert.Equal(t, submit.DefaultFailureMessage, last.Content)
	assert.True(t, last.IsError())
	assert.Equal(t, submit.StateIdle, ctrl.State())
	assert.Contains(t, m.View(), "Connection to Jupiter database failed")
}

func TestModel_RendererReusedAcrossSubmissions(t *testing.T) {
	asker := &stubAsker{resp: &answer.ChatResponse{Answer: "**Io**"}}
	m, _ := newTestModel(t, asker, Options{Markdown: true, Suggestions: []string{"a"}})
	require.NotNil(t, m.renderer)
	first := m.renderer

	m = typeText(t, m, "x")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, findAnswer(t, drain(cmd)))
	assert.Same(t, first, m.renderer)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Same(t, first, m.renderer, "height change keeps the wrap width")

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 40})
	assert.NotSame(t, first, m.renderer)
	assert.Equal(t, m.viewport.Width, m.rendererWidth)
}

func TestModel_BlankInputIgnored(t *testing.T) {
	asker := &stubAsker{}
	m, ctrl := newTestModel(t, asker, Options{})

	m = typeText(t, m, "   ")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, 1, ctrl.Transcript().Len())
	assert.Equal(t, "   ", m.input.Value())
	assert.Zero(t, asker.calls)
}

func TestModel_InputDisabledWhileBusy(t *testing.T) {
	asker := &stubAsker{resp: &answer.ChatResponse{Answer: "Io"}}
	m, ctrl := newTestModel(t, asker, Options{})

	m = typeText(t, m, "first")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, ctrl.Busy())

	m = typeText(t, m, "second")
	assert.Empty(t, m.input.Value())

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, ctrl.Transcript().Len())
	assert.Zero(t, asker.calls)
}

func TestModel_StaleAnswerIgnored(t *testing.T) {
	m, ctrl := newTestModel(t, &stubAsker{}, Options{})

	m, cmd := send(t, m, AnswerMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, ctrl.Transcript().Len())
	assert.Equal(t, submit.StateIdle, ctrl.State())
	_ = m
}

func TestModel_SpinnerStopsWhenIdle(t *testing.T) {
	m, _ := newTestModel(t, &stubAsker{}, Options{})

	_, cmd := send(t, m, m.spinner.Tick())
	assert.Nil(t, cmd)
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

func TestModel_SuggestionShortcut(t *testing.T) {
	asker := &stubAsker{resp: &answer.ChatResponse{Answer: "Ganymede"}}
	m, ctrl := newTestModel(t, asker, Options{
		Suggestions: []string{"Largest moon?", "Volcanic moon?"},
	})
	assert.Contains(t, m.View(), "Volcanic moon?")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}, Alt: true})
	require.NotNil(t, cmd)
	assert.Equal(t, "Volcanic moon?", ctrl.Transcript().Last().Content)

	m, _ = send(t, m, findAnswer(t, drain(cmd)))
	assert.NotContains(t, m.View(), "SUGGESTED QUERIES")

	// Shortcuts retire after the first question.
	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true})
	assert.Nil(t, cmd)
	assert.Equal(t, 3, ctrl.Transcript().Len())
}

func TestModel_SuggestionOutOfRange(t *testing.T) {
	m, ctrl := newTestModel(t, &stubAsker{}, Options{Suggestions: []string{"only one"}})

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}, Alt: true})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, ctrl.Transcript().Len())
}

func TestSuggestionIndex(t *testing.T) {
	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"alt+1", 0, true},
		{"alt+9", 8, true},
		{"alt+0", 0, false},
		{"alt+a", 0, false},
		{"1", 0, false},
		{"ctrl+1", 0, false},
	}

	for _, tc := range tests {
		got, ok := suggestionIndex(tc.key)
		assert.Equal(t, tc.ok, ok, tc.key)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.key)
		}
	}
}

// =============================================================================
// HEADER, EXPORT AND QUIT
// =============================================================================

func TestModel_HealthStatus(t *testing.T) {
	m, _ := newTestModel(t, &stubAsker{}, Options{
		Health:     stubHealth{},
		ServiceURL: "http://127.0.0.1:8000",
	})
	assert.Contains(t, m.View(), "CHECKING")

	var status HealthStatusMsg
	for _, msg := range drain(m.Init()) {
		if s, ok := msg.(HealthStatusMsg); ok {
			status = s
		}
	}
	require.True(t, status.Healthy)

	m, _ = send(t, m, status)
	assert.Contains(t, m.View(), "SERVICE: ONLINE")
	assert.Contains(t, m.View(), "127.0.0.1:8000")

	m, _ = send(t, m, HealthStatusMsg{Error: errors.New("refused")})
	assert.Contains(t, m.View(), "SERVICE: OFFLINE")
}

func TestModel_NoHealthChecker(t *testing.T) {
	m, _ := newTestModel(t, &stubAsker{}, Options{})
	assert.Contains(t, m.View(), "NOT CHECKED")
}

func TestModel_Export(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestModel(t, &stubAsker{}, Options{ExportDir: dir})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	require.NotNil(t, cmd)

	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	exported, ok := msgs[0].(ExportedMsg)
	require.True(t, ok)
	require.NoError(t, exported.Error)
	assert.Equal(t, dir, filepath.Dir(exported.Path))

	data, err := os.ReadFile(exported.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), model.DefaultGreeting)

	m, _ = send(t, m, exported)
	assert.Contains(t, m.View(), "EXPORTED TO")

	// Any key clears the notice.
	m = typeText(t, m, "a")
	assert.NotContains(t, m.View(), "EXPORTED TO")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, &stubAsker{}, Options{})

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ViewBeforeResize(t *testing.T) {
	ctrl := submit.New(model.NewTranscript(""), &stubAsker{}, submit.Options{})
	m := New(ctrl, Options{Theme: styles.NewTheme("dark")})
	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_ViewFitsWidth(t *testing.T) {
	m, _ := newTestModel(t, &stubAsker{}, Options{Suggestions: []string{"Largest moon?"}})

	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 100, line)
	}
}

func TestHelpLine(t *testing.T) {
	k := DefaultKeyMap()
	assert.Equal(t, "enter send • esc quit", HelpLine([]key.Binding{k.Submit, k.Quit}))
}
