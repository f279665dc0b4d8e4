package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"polylith/internal/pkgmgr"
	"polylith/internal/tools"
	"polylith/internal/tui"
)

const toolsProbeTimeout = 10 * time.Second

// toolsRunner runs the --version probes. Tests replace it.
var toolsRunner tools.Runner = tools.CmdRunner{}

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect package manager executables",
	}

	cmd.AddCommand(newToolsListCmd())
	return cmd
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported package managers and their installed versions",
		Args:  cobra.NoArgs,
		RunE:  runToolsList,
	}
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), toolsProbeTimeout)
	defer cancel()

	infos := tools.Probe(ctx, toolsRunner, pkgmgr.Identifiers())

	if outputJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printToolTable(cmd, infos)
	return nil
}

func printToolTable(cmd *cobra.Command, infos []tools.ToolInfo) {
	out := cmd.OutOrStdout()
	styled := tui.DetectMode(out, false) == tui.ModeTUI

	w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tSTATUS\tVERSION\tBACKEND\tPATH")
	for _, info := range infos {
		status := "ok"
		if !info.Available {
			status = "missing"
		}
		label := status
		if styled {
			label = tui.StatusStyle(status).Render(status)
		}

		backendName := "-"
		if m, err := pkgmgr.Parse(info.Name); err == nil {
			backendName = m.Backend().Identifier()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", info.Name, label, dash(info.Version), backendName, dash(info.Path))
	}
	w.Flush()

	for _, info := range infos {
		if info.Error != "" && info.Available {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", info.Name, info.Error)
		}
	}
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
