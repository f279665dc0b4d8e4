package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"polylith/internal/backend"
	"polylith/internal/detect"
	"polylith/internal/paths"
	"polylith/internal/pyproject"
	"polylith/internal/tui"
	"polylith/internal/workspace"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show workspace structure and build backend state",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

type statusReport struct {
	Root   string        `json:"root"`
	State  string        `json:"state"`
	Checks []healthCheck `json:"checks"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	exists, err := paths.DirExists(appFs, s.paths.Root)
	if err != nil {
		return fmt.Errorf("stat workspace dir: %w", err)
	}
	if !exists {
		return fmt.Errorf("workspace directory does not exist: %s", s.paths.Root)
	}

	state := workspace.ClassifyState(appFs, s.paths.Root)
	s.logger.Debug("workspace state", "root", s.paths.Root, "state", state.String())

	report := statusReport{
		Root:  s.paths.Root,
		State: state.String(),
		Checks: []healthCheck{
			checkStructure(s.paths),
			checkManifest(s.paths),
			checkBackend(s.paths),
			checkPackageManager(s.paths),
		},
	}
	return writeStatus(cmd, report)
}

func checkStructure(wp paths.WorkspacePaths) healthCheck {
	var missing []string
	for _, dir := range wp.BrickDirs() {
		if ok, _ := paths.DirExists(appFs, dir); !ok {
			missing = append(missing, wp.Rel(dir)+"/")
		}
	}
	if ok, _ := paths.FileExists(appFs, wp.WorkspaceFile); !ok {
		missing = append(missing, paths.WorkspaceFileName)
	}

	if len(missing) == 0 {
		return healthCheck{Name: "Structure", Status: "ok", Summary: "workspace.toml and brick directories present"}
	}
	return healthCheck{Name: "Structure", Status: "missing", Summary: "missing " + strings.Join(missing, ", ")}
}

func checkManifest(wp paths.WorkspacePaths) healthCheck {
	doc, err := pyproject.Load(appFs, wp.Manifest)
	switch {
	case err != nil:
		return healthCheck{Name: "Manifest", Status: "error", Summary: err.Error()}
	case doc.IsEmpty():
		if ok, _ := paths.FileExists(appFs, wp.Manifest); ok {
			return healthCheck{Name: "Manifest", Status: "manifest-missing", Summary: "pyproject.toml is empty"}
		}
		return healthCheck{Name: "Manifest", Status: "manifest-missing", Summary: "no pyproject.toml"}
	}

	name := doc.String("project", "name")
	if name == "" {
		name = "(unnamed project)"
	}
	return healthCheck{Name: "Manifest", Status: "ok", Summary: name}
}

func checkBackend(wp paths.WorkspacePaths) healthCheck {
	declared, err := workspace.DetectExistingBackend(appFs, wp.Root)
	if err != nil {
		return healthCheck{Name: "Backend", Status: "error", Summary: err.Error()}
	}
	if declared.IsNone() {
		return healthCheck{Name: "Backend", Status: "missing", Summary: "no build-system declared"}
	}
	if declared.Kind() == backend.KindUnsupported {
		return healthCheck{Name: "Backend", Status: "conflict", Summary: fmt.Sprintf("%s is not supported", declared)}
	}

	doc, _ := pyproject.Load(appFs, wp.Manifest)
	if !backend.HasCompleteBuildSystem(doc) {
		return healthCheck{Name: "Backend", Status: "incomplete", Summary: fmt.Sprintf("%s declared without Polylith settings", declared)}
	}
	return healthCheck{Name: "Backend", Status: "complete", Summary: declared.Identifier()}
}

func checkPackageManager(wp paths.WorkspacePaths) healthCheck {
	found := detect.Detect(appFs, wp.Root, detect.Invocation{Args: invocationArgs(), Env: invocationEnv()})
	if !found.Found {
		return healthCheck{Name: "Manager", Status: "warn", Summary: "not detected"}
	}
	return healthCheck{
		Name:    "Manager",
		Status:  "ok",
		Summary: fmt.Sprintf("%s (from %s %s)", found.Manager.Identifier(), found.Source, found.Evidence),
	}
}

func writeStatus(cmd *cobra.Command, report statusReport) error {
	out := cmd.OutOrStdout()
	if outputJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode status json: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	styled := tui.DetectMode(out, false) == tui.ModeTUI
	render := func(status, text string) string {
		if !styled {
			return text
		}
		return tui.StatusStyle(status).Render(text)
	}

	header := "WORKSPACE:"
	if styled {
		header = tui.HeaderStyle.Render(header)
	}
	fmt.Fprintln(out, header+" "+report.Root)
	fmt.Fprintf(out, "  %-12s %s\n", "State:", render(stateStatus(report.State), report.State))
	for _, c := range report.Checks {
		fmt.Fprintf(out, "  %-12s %s    %s\n", c.Name+":", render(c.Status, strings.ToUpper(c.Status)), c.Summary)
	}
	return nil
}

func stateStatus(state string) string {
	switch state {
	case workspace.ExistingComplete.String():
		return "complete"
	case workspace.ExistingIncomplete.String():
		return "incomplete"
	case workspace.ExistingNoManifest.String():
		return "manifest-missing"
	default:
		return "missing"
	}
}
