// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/moonchat/internal/config"
	"github.com/jeranaias/moonchat/internal/export"
	"github.com/jeranaias/moonchat/internal/model"
	"github.com/jeranaias/moonchat/internal/submit"
	"github.com/jeranaias/moonchat/internal/ui/styles"
	"github.com/jeranaias/moonchat/internal/util"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for the line-mode chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// ChatSession is one line-mode conversation.
type ChatSession struct {
	ctrl        *submit.Controller
	out         io.Writer
	errOut      io.Writer
	markdown    bool
	showContext bool
}

// handleLine processes one line of input. It returns false when the user
// asked to leave.
func (s *ChatSession) handleLine(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return true
	}

	if strings.HasPrefix(input, "/") {
		cont, err := s.handleSlashCommand(input)
		if err != nil {
			fmt.Fprintf(s.errOut, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		}
		return cont
	}

	if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
		return false
	}

	msg, err := s.ctrl.Submit(ctx, input)
	if err != nil {
		fmt.Fprintf(s.errOut, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		return true
	}
	fmt.Fprintln(s.out)
	printEntry(s.out, s.errOut, msg, s.markdown, s.showContext)
	fmt.Fprintln(s.out)
	return true
}

// handleSlashCommand runs a /command. It returns false on /quit.
func (s *ChatSession) handleSlashCommand(input string) (bool, error) {
	fields := strings.Fields(input)
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "/help", "/h", "/?":
		s.printHelp()
	case "/history":
		s.printHistory()
	case "/export":
		if len(args) != 1 {
			return true, fmt.Errorf("usage: /export <file>")
		}
		exp := export.ForPath(args[0], nil)
		path, err := export.ToFile(s.ctrl.Transcript(), exp, args[0])
		if err != nil {
			return true, err
		}
		fmt.Fprintf(s.out, "%s %s\n", SuccessStyle.Render("Exported to"), path)
	case "/quit", "/q", "/exit":
		return false, nil
	default:
		return true, fmt.Errorf("unknown command %s (try /help)", name)
	}
	return true, nil
}

func (s *ChatSession) printHelp() {
	commands := [][2]string{
		{"/help", "Show available commands"},
		{"/history", "Show the conversation so far"},
		{"/export <file>", "Write the transcript (.md, .json or .yaml)"},
		{"/quit", "Leave the chat"},
	}
	fmt.Fprintln(s.out, TitleStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(s.out, "  %s %s\n", RenderLabel(c[0]), DimStyle.Render(c[1]))
	}
}

func (s *ChatSession) printHistory() {
	width := GetTerminalWidth() - 18
	for i, msg := range s.ctrl.Transcript().Messages() {
		label := PromptStyle.Render(msg.Role.Label())
		if msg.Role == model.RoleAssistant {
			label = SuccessStyle.Render(msg.Role.Label())
		}
		text := util.TruncateWidth(util.OneLine(msg.Content), width)
		fmt.Fprintf(s.out, "%3d %s %s\n", i+1, label, text)
	}
}

// printSummary prints the exit line.
func (s *ChatSession) printSummary() {
	doc := export.FromTranscript(s.ctrl.Transcript())
	fmt.Fprintf(s.out, "%s %d questions, %d entries\n",
		DimStyle.Render("Session ended:"), doc.Questions(), len(doc.Messages))
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-mode chat session",
		Long: `Chat with the service one line at a time, without the full-screen UI.

Commands during chat:
  /help            Show available commands
  /history         Show the conversation so far
  /export <file>   Write the transcript (.md, .json or .yaml)
  /quit            Leave the chat (also Ctrl+C, Ctrl+D)`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := &ChatSession{
				ctrl:        a.newController(a.newClient()),
				out:         cmd.OutOrStdout(),
				errOut:      cmd.ErrOrStderr(),
				markdown:    a.cfg.UI.Markdown && IsStdoutTTY(),
				showContext: a.cfg.UI.ShowContext,
			}
			return runChat(cmd.Context(), session)
		},
	}
}

// runChat is the REPL loop.
func runChat(ctx context.Context, s *ChatSession) error {
	fmt.Fprintln(s.out, TitleStyle.Render(styles.Title))
	fmt.Fprintln(s.out, RenderSeparator(len(styles.Title)))
	fmt.Fprintln(s.out, AnswerStyle.Render(s.ctrl.Transcript().Last().Content))
	fmt.Fprintln(s.out, DimStyle.Render("Type /help for commands."))
	fmt.Fprintln(s.out)

	input := NewChatCLI()
	defer input.Close()

	for {
		line, err := input.ReadInput("> QUERY: ")
		if err != nil {
			// Ctrl+C, Ctrl+D or a closed stdin all end the session.
			fmt.Fprintln(s.out)
			s.printSummary()
			return nil
		}
		if !s.handleLine(ctx, line) {
			s.printSummary()
			return nil
		}
	}
}
