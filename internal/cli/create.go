package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"polylith/internal/config"
	"polylith/internal/detect"
	"polylith/internal/prompt"
	"polylith/internal/tools"
	"polylith/internal/tui"
	"polylith/internal/workspace"
)

var (
	createNamespace      string
	createTheme          string
	createPackageManager string
)

// invocationArgs and invocationEnv are what detection sees of the process.
var (
	invocationArgs = func() []string { return os.Args }
	invocationEnv  = os.Environ
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create Polylith workspace structure",
	}
	cmd.AddCommand(newCreateWorkspaceCmd())
	return cmd
}

func newCreateWorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Scaffold a workspace and configure its build backend",
		Args:  cobra.NoArgs,
		RunE:  runCreateWorkspace,
	}

	cmd.Flags().StringVar(&createNamespace, "name", "", "Top namespace for bricks (required)")
	cmd.Flags().StringVar(&createTheme, "theme", "", "Workspace theme: tdd or loose (default from config)")
	cmd.Flags().StringVar(&createPackageManager, "package-manager", "", "Package manager to configure: uv, hatch, poetry or pdm")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runCreateWorkspace(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	theme := createTheme
	if theme == "" {
		theme = s.cfg.Theme
	}
	if err := validateTheme(theme); err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	mode := tui.DetectMode(stdout, outputJSON)

	var out io.Writer = stdout
	if mode == tui.ModeJSON {
		out = cmd.ErrOrStderr()
	}

	var runner tools.Runner = tools.CmdRunner{}
	var prompter prompt.Prompter
	switch mode {
	case tui.ModeTUI:
		runner = tui.StatusRunner{Runner: runner, W: cmd.ErrOrStderr()}
		prompter = tui.Prompter{In: cmd.InOrStdin(), Out: stdout}
	case tui.ModePlain:
		prompter = prompt.NewLinePrompter(cmd.InOrStdin(), stdout)
	}

	s.logger.Debug("create workspace", "root", s.paths.Root, "namespace", createNamespace, "theme", theme, "package_manager", createPackageManager)

	res, err := workspace.Create(cmd.Context(), workspace.Options{
		Paths:          s.paths,
		Namespace:      createNamespace,
		Theme:          theme,
		PackageManager: createPackageManager,
		Invocation: detect.Invocation{
			Args:        invocationArgs(),
			Env:         invocationEnv(),
			Interactive: interactive(s.cfg, cmd.InOrStdin(), mode),
		},
		Prompter:    prompter,
		Runner:      runner,
		Fs:          appFs,
		Out:         out,
		Logger:      s.logger,
		DocsURL:     s.cfg.DocsURL,
		InitTimeout: s.cfg.InitTimeout,
	})

	// StateBefore is empty when Create failed before touching the workspace.
	if mode == tui.ModeJSON && res.StateBefore != "" {
		data, encErr := json.MarshalIndent(res, "", "  ")
		if encErr != nil {
			return fmt.Errorf("encode json: %w", encErr)
		}
		fmt.Fprintln(stdout, string(data))
	}
	return err
}

func validateTheme(theme string) error {
	cfg := config.Default()
	cfg.Theme = theme
	return cfg.Validate()
}

// interactive applies the configured policy. JSON output never prompts.
func interactive(cfg config.Config, in io.Reader, mode tui.OutputMode) bool {
	if mode == tui.ModeJSON {
		return false
	}
	switch cfg.Interactive {
	case config.InteractiveAlways:
		return true
	case config.InteractiveNever:
		return false
	default:
		return tui.IsInteractive(in)
	}
}
