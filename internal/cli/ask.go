// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeranaias/moonchat/internal/export"
	"github.com/jeranaias/moonchat/internal/model"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

var (
	markdownRenderer     *glamour.TermRenderer
	markdownRendererOnce sync.Once
)

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	markdownRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(GetTerminalWidth()-4),
		)
		if err == nil {
			markdownRenderer = r
		}
	})
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// printEntry writes an assistant entry. Markdown is only rendered for
// terminals so piped output stays plain.
func printEntry(out, errOut io.Writer, msg model.Message, markdown, showContext bool) {
	if msg.IsError() {
		fmt.Fprintln(errOut, ErrorStyle.Render(msg.Content))
		return
	}

	if markdown {
		fmt.Fprint(out, renderMarkdown(msg.Content))
	} else {
		fmt.Fprintln(out, AnswerStyle.Render(msg.Content))
	}
	if showContext && msg.Metadata.ContextUsed() {
		fmt.Fprintln(out, DimStyle.Render(contextNote(msg.Metadata.ContextCount())))
	}
}

// =============================================================================
// ASK COMMAND
// =============================================================================

func newAskCmd(a *app) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question",
		Long: `Send one question to the service and print the answer.

The question is asked in a fresh session: only the greeting travels with it.
The exit status is 1 when the service could not answer.`,
		Example: `  moonchat ask "Which moon has the most volcanoes?"
  moonchat ask --json "Is there water under Europa's ice?"
  moonchat ask --url http://localhost:9000 "How big is Callisto?"`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			ctrl := a.newController(a.newClient())
			msg, err := ctrl.Submit(cmd.Context(), question)
			if err != nil {
				return &UsageError{Err: err}
			}

			if jsonMode {
				resp := NewJSONResponse("ask", export.FromTranscript(ctrl.Transcript()))
				if msg.IsError() {
					resp.Fail(msg.Content)
				}
				if err := resp.Write(cmd.OutOrStdout()); err != nil {
					return err
				}
			} else {
				printEntry(cmd.OutOrStdout(), cmd.ErrOrStderr(), msg, IsStdoutTTY(), a.cfg.UI.ShowContext)
			}

			if msg.IsError() {
				return errAlreadyReported
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "print the session transcript as JSON")
	return cmd
}
