package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"polylith/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect poly configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration in YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, _, err := config.Load(appFs, configPath)
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(configJSON(cfg), "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	if len(data) == 0 || data[len(data)-1] != '\n' {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	_, used, err := config.Load(appFs, configPath)
	if err != nil {
		return err
	}

	path := used
	if path == "" {
		path = config.File() + " (not found, using defaults)"
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func configJSON(cfg config.Config) map[string]any {
	return map[string]any{
		"theme":        cfg.Theme,
		"init_timeout": cfg.InitTimeout.String(),
		"interactive":  cfg.Interactive,
		"docs_url":     cfg.DocsURL,
		"log": map[string]any{
			"level": cfg.Log.Level,
			"file":  cfg.Log.File,
		},
	}
}
