// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/moonchat/internal/answer"
)

// HealthReport is the --json payload of the health command.
type HealthReport struct {
	URL       string `json:"url"`
	Healthy   bool   `json:"healthy"`
	Kind      string `json:"kind,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

func newHealthCmd(a *app) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the service is reachable",
		Long: `Run the GET /health pre-flight against the configured service.

Any 2xx answer counts as healthy. The exit status is 1 otherwise.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.newClient()

			ctx, cancel := context.WithTimeout(cmd.Context(), client.Timeout())
			defer cancel()

			start := time.Now()
			err := client.CheckHealth(ctx)
			report := HealthReport{
				URL:       client.BaseURL(),
				Healthy:   err == nil,
				LatencyMS: time.Since(start).Milliseconds(),
			}
			var ce *answer.ClientError
			if errors.As(err, &ce) {
				report.Kind = ce.Kind.String()
			}

			out := cmd.OutOrStdout()
			if jsonMode {
				resp := NewJSONResponse("health", report)
				if err != nil {
					resp.Fail(err.Error())
				}
				if werr := resp.Write(out); werr != nil {
					return werr
				}
			} else {
				fmt.Fprintf(out, "%s %s\n", RenderLabel("Service"), report.URL)
				if err == nil {
					fmt.Fprintf(out, "%s %s %s\n", RenderLabel("Status"), RenderStatus(true),
						DimStyle.Render(fmt.Sprintf("(%dms)", report.LatencyMS)))
				} else {
					fmt.Fprintf(out, "%s %s %v\n", RenderLabel("Status"), RenderStatus(false), err)
				}
			}

			if err != nil {
				a.logger.Debug("health check failed", "err", err)
				return errAlreadyReported
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "output in JSON format")
	return cmd
}
