// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/moonchat/internal/answer"
	"github.com/jeranaias/moonchat/internal/config"
	"github.com/jeranaias/moonchat/internal/logging"
	"github.com/jeranaias/moonchat/internal/model"
	"github.com/jeranaias/moonchat/internal/submit"
)

// Version information (set by main at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	baseURL    string
	timeout    int
	verbose    bool
	logFile    string
}

// app is the state every command shares once the persistent flags are parsed.
type app struct {
	opts   globalOptions
	cfg    *config.Config
	logger *log.Logger
	closer io.Closer

	loadWarn error
}

// newRootCmd builds the moonchat command tree around a.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "moonchat",
		Short: "Terminal client for the Jupiter moons question-answering service",
		Long: `moonchat asks a Jupiter moons question-answering service about the moons
of Jupiter and keeps the conversation in a scrolling transcript.

Each question is sent together with the conversation so far. Answers that
were grounded in retrieved reference material are marked as such.

Quick Start:
  moonchat                               # Full-screen chat
  moonchat ask "Which moon is largest?"  # One question, one answer
  moonchat chat                          # Line-mode chat
  moonchat health                        # Is the service up?`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		// Stray words land here and are reported as unknown commands.
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, false)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "config file (default ~/.moonchat/config.toml)")
	flags.StringVar(&a.opts.baseURL, "url", "", "service base URL (overrides config)")
	flags.IntVar(&a.opts.timeout, "timeout", 0, "request timeout in seconds (overrides config)")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.opts.logFile, "log-file", "", "write logs to this file")

	root.AddCommand(
		newAskCmd(a),
		newChatCmd(a),
		newHealthCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	a := &app{}
	root := newRootCmd(a)
	err := a.execute(root)
	DisplayError(root.ErrOrStderr(), err)
	return GetExitCode(err)
}

// execute runs root and releases the log file however the command ended.
// Cobra skips post-run hooks when RunE fails, so this cannot live in one.
func (a *app) execute(root *cobra.Command) error {
	defer a.close()
	return root.Execute()
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// setup loads the configuration, applies flag overrides and builds the logger.
// A lenient setup replaces a configuration that fails to load or validate
// with the defaults and a warning, so the config commands can repair it.
func (a *app) setup(cmd *cobra.Command, lenient bool) error {
	cfg, err := a.resolveConfig(cmd)
	if err != nil {
		if !lenient {
			return err
		}
		a.loadWarn = err
		cfg = config.Default()
		cfg.SetDefaults()
	}

	logOpts := logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}
	if a.opts.verbose {
		logOpts.Level = "debug"
	}
	if a.opts.logFile != "" {
		logOpts.File = a.opts.logFile
	}

	// The TUI owns the terminal, so without a log file its logs are dropped.
	var fallback io.Writer
	if cmd != cmd.Root() {
		fallback = cmd.ErrOrStderr()
	}
	logger, closer, err := logging.New(logOpts, fallback)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	if a.loadWarn != nil {
		logger.Warn("config file ignored, using defaults", "err", a.loadWarn)
	}

	a.cfg = cfg
	a.logger = logger
	a.closer = closer
	logger.Debug("config loaded", "base_url", cfg.Service.BaseURL, "timeout", cfg.Service.Timeout())
	return nil
}

// resolveConfig loads the configuration and applies the flag overrides.
func (a *app) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Service.BaseURL = a.opts.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Service.TimeoutSecs = a.opts.timeout
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// loadConfig loads the --config file or the default locations. An unreadable
// default file falls back to defaults and is remembered in loadWarn.
func (a *app) loadConfig() (*config.Config, error) {
	if a.opts.configPath != "" {
		return config.LoadFromPath(a.opts.configPath)
	}
	cfg, err := config.Load()
	if cfg == nil {
		return nil, err
	}
	a.loadWarn = err
	return cfg, nil
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}

// configFile returns the file config set writes to.
func (a *app) configFile() (string, error) {
	if a.opts.configPath != "" {
		return a.opts.configPath, nil
	}
	return config.ConfigPathTOML()
}

// =============================================================================
// COMPONENT WIRING
// =============================================================================

func (a *app) newClient() *answer.Client {
	return answer.NewClientWithConfig(&answer.ClientConfig{
		BaseURL:     a.cfg.Service.BaseURL,
		Timeout:     a.cfg.Service.Timeout(),
		HealthCheck: a.cfg.Service.HealthCheck,
		UserAgent:   "moonchat/" + Version,
		Logger:      a.logger,
	})
}

// newController starts a fresh session transcript around asker.
func (a *app) newController(asker submit.Asker) *submit.Controller {
	tr := model.NewTranscript(a.cfg.Transcript.Greeting)
	a.logger.Debug("session started", "session", tr.ID())
	return submit.New(tr, asker, submit.Options{
		FailureMessage: a.cfg.Transcript.FailureMessage,
		Logger:         a.logger,
	})
}
