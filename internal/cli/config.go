// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jeranaias/moonchat/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and modify configuration",
		Long: `View and modify the moonchat configuration.

The configuration lives in ~/.moonchat/config.toml unless --config names
another file. Environment variables (MOONCHAT_BASE_URL, MOONCHAT_TIMEOUT,
MOONCHAT_HEALTH_CHECK, MOONCHAT_THEME, MOONCHAT_LOG_LEVEL, MOONCHAT_LOG_FORMAT)
override the file; a .env file is read first.

A config file that fails to load or validate is replaced by the defaults
here, with a warning, so that config set can repair it.`,
		Example: `  moonchat config show
  moonchat config get service.base_url
  moonchat config set service.timeout_secs 60
  moonchat config set ui.suggestions "Largest moon?,Volcanic moon?"`,
		Args: usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, true)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(a, cmd, false)
		},
	}

	var jsonMode bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(a, cmd, jsonMode)
		},
	}
	show.Flags().BoolVar(&jsonMode, "json", false, "output in JSON format")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return &UsageError{Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a value in the config file",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := setConfigValue(a, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", SuccessStyle.Render("Set"), args[0], args[1])
			fmt.Fprintln(cmd.OutOrStdout(), DimStyle.Render("Saved to "+path))
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Show the config file location",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.configFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	keys := &cobra.Command{
		Use:   "keys",
		Short: "List the configuration keys",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range config.GetAllKeys() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}

	cmd.AddCommand(show, get, set, path, keys)
	return cmd
}

func showConfig(a *app, cmd *cobra.Command, jsonMode bool) error {
	out := cmd.OutOrStdout()
	if jsonMode {
		return NewJSONResponse("config show", a.cfg).Write(out)
	}
	return toml.NewEncoder(out).Encode(a.cfg)
}

// setConfigValue edits the config file itself, so environment and flag
// overrides of this run are not persisted.
func setConfigValue(a *app, key, value string) (string, error) {
	path, err := a.configFile()
	if err != nil {
		return "", err
	}

	if strings.HasSuffix(path, ".json") {
		return "", &UsageError{Err: errors.New("config set only edits TOML files")}
	}

	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return "", NewCommandError("config", "set", "cannot read "+path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", NewCommandError("config", "set", "cannot read "+path, err)
	}

	if err := cfg.Set(key, value); err != nil {
		return "", &UsageError{Err: err}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return "", NewCommandError("config", "set", "cannot write "+path, err)
	}
	return path, nil
}

func formatValue(v interface{}) string {
	if list, ok := v.([]string); ok {
		return strings.Join(list, ",")
	}
	return fmt.Sprint(v)
}
