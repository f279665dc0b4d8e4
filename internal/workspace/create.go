// Package workspace scaffolds Polylith workspaces and drives build backend
// setup for them.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"polylith/internal/detect"
	"polylith/internal/logx"
	"polylith/internal/paths"
	"polylith/internal/pkgmgr"
	"polylith/internal/prompt"
	"polylith/internal/reconcile"
	"polylith/internal/tools"
)

// Mode is how the package manager decision was made.
type Mode string

const (
	ModeExplicit       Mode = "explicit"
	ModeInteractive    Mode = "interactive"
	ModeNonInteractive Mode = "non-interactive"
)

// DefaultDocsURL is linked from the completion message.
const DefaultDocsURL = "https://davidvujic.github.io/python-polylith-docs/setup/"

// Options configures Create. Only Fs and Paths are required. A nil Prompter
// disables prompting.
type Options struct {
	Paths          paths.WorkspacePaths
	Namespace      string
	Theme          string
	ProjectName    string
	PackageManager string
	Invocation     detect.Invocation
	Prompter       prompt.Prompter
	Runner         tools.Runner
	Fs             afero.Fs
	Out            io.Writer
	Logger         *slog.Logger
	DocsURL        string
	InitTimeout    time.Duration
}

// Result describes what Create did.
type Result struct {
	Mode            Mode           `json:"mode"`
	StateBefore     string         `json:"state_before"`
	StateAfter      string         `json:"state_after"`
	Created         []string       `json:"created"`
	Detection       *DetectionInfo `json:"detection,omitempty"`
	PackageManager  string         `json:"package_manager,omitempty"`
	ManifestCreated bool           `json:"manifest_created"`
	Outcome         string         `json:"outcome,omitempty"`
	Guidance        bool           `json:"guidance_shown"`
	Warning         string         `json:"warning,omitempty"`

	reconciled *reconcile.Outcome
}

// DetectionInfo records which signal suggested a package manager.
type DetectionInfo struct {
	PackageManager string `json:"package_manager"`
	Source         string `json:"source"`
	Evidence       string `json:"evidence"`
}

// Reconciled returns the reconciliation outcome, if one ran.
func (r Result) Reconciled() (reconcile.Outcome, bool) {
	if r.reconciled == nil {
		return reconcile.Outcome{}, false
	}
	return *r.reconciled, true
}

// Create scaffolds the workspace and then configures the build backend. An
// explicit package manager makes every failure fatal. Without one, an
// interactive session asks the user and turns failures into guidance, and a
// non-interactive session only prints guidance.
func Create(ctx context.Context, opts Options) (Result, error) {
	opts = withDefaults(opts)
	logger := opts.Logger
	root := opts.Paths.Root

	var explicit *pkgmgr.Manager
	if opts.PackageManager != "" {
		m, err := pkgmgr.Parse(opts.PackageManager)
		if err != nil {
			return Result{}, err
		}
		explicit = &m
	}

	res := Result{StateBefore: ClassifyState(opts.Fs, root).String()}
	logger.Info("workspace state", "root", root, "state", res.StateBefore)

	created, err := Scaffold(opts.Fs, opts.Paths, opts.Namespace, opts.Theme, logger)
	res.Created = created
	if err != nil {
		return res, err
	}
	reportScaffold(opts, created)

	switch {
	case explicit != nil:
		res.Mode = ModeExplicit
		err = configureExplicit(ctx, opts, *explicit, &res)
	case opts.Invocation.Interactive && opts.Prompter != nil:
		res.Mode = ModeInteractive
		configureInteractive(ctx, opts, &res)
	default:
		res.Mode = ModeNonInteractive
		writeCompletion(opts, suggestion(detectManager(opts, &res)), &res)
	}

	res.StateAfter = ClassifyState(opts.Fs, root).String()
	logger.Info("workspace ready", "mode", string(res.Mode), "state", res.StateAfter, "outcome", res.Outcome)
	return res, err
}

func withDefaults(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logx.Discard()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.DocsURL == "" {
		opts.DocsURL = DefaultDocsURL
	}
	if opts.InitTimeout <= 0 {
		opts.InitTimeout = pkgmgr.DefaultInitTimeout
	}
	if opts.ProjectName == "" {
		opts.ProjectName = filepath.Base(opts.Paths.Root)
	}
	if opts.Theme == "" {
		opts.Theme = "tdd"
	}
	if opts.Runner == nil {
		opts.Runner = tools.CmdRunner{}
	}
	return opts
}

func reportScaffold(opts Options, created []string) {
	if len(created) == 0 {
		fmt.Fprintf(opts.Out, "Workspace already initialized at %s\n", opts.Paths.Root)
		return
	}
	fmt.Fprintf(opts.Out, "Initialized workspace at %s\n", opts.Paths.Root)
	for _, entry := range created {
		fmt.Fprintf(opts.Out, "  created %s\n", entry)
	}
}

func configureExplicit(ctx context.Context, opts Options, m pkgmgr.Manager, res *Result) error {
	res.PackageManager = m.Identifier()

	exists, err := paths.Exists(opts.Fs, opts.Paths.Manifest)
	if err != nil {
		return fmt.Errorf("check manifest: %w", err)
	}
	if !exists {
		if err := createManifest(ctx, opts, m, res); err != nil {
			return err
		}
	}
	return reconcileManifest(opts, m, res)
}

func configureInteractive(ctx context.Context, opts Options, res *Result) {
	logger := opts.Logger

	if ClassifyState(opts.Fs, opts.Paths.Root) == ExistingComplete {
		logger.Info("build system already complete, skipping package manager setup")
		return
	}

	found := detectManager(opts, res)
	m, ok, err := prompt.Run(opts.Prompter, found)
	if err != nil {
		degrade(opts, res, pkgmgr.Uv, fmt.Errorf("prompt: %w", err))
		return
	}
	if !ok {
		logger.Info("package manager setup declined")
		writeCompletion(opts, suggestion(found), res)
		return
	}
	res.PackageManager = m.Identifier()

	exists, err := paths.Exists(opts.Fs, opts.Paths.Manifest)
	if err != nil {
		degrade(opts, res, m, fmt.Errorf("check manifest: %w", err))
		return
	}
	if !exists {
		question := prompt.Question{
			Kind: prompt.Confirm,
			Text: fmt.Sprintf("No %s found. Create one using %s? [y/n]", paths.ManifestFileName, m.DescribeInitCommand(opts.ProjectName)),
		}
		yes, err := opts.Prompter.Confirm(question)
		if err != nil {
			degrade(opts, res, m, fmt.Errorf("prompt: %w", err))
			return
		}
		if !yes {
			writeCompletion(opts, m, res)
			return
		}
		if err := createManifest(ctx, opts, m, res); err != nil {
			degrade(opts, res, m, err)
			return
		}
	}

	if err := reconcileManifest(opts, m, res); err != nil {
		degrade(opts, res, m, err)
	}
}

func detectManager(opts Options, res *Result) detect.Result {
	found := detect.Detect(opts.Fs, opts.Paths.Root, opts.Invocation)
	if found.Found {
		res.Detection = &DetectionInfo{
			PackageManager: found.Manager.Identifier(),
			Source:         string(found.Source),
			Evidence:       found.Evidence,
		}
		opts.Logger.Info("detected package manager", "package_manager", found.Manager.Identifier(), "source", string(found.Source), "evidence", found.Evidence)
	} else {
		opts.Logger.Debug("no package manager detected")
	}
	return found
}

func suggestion(found detect.Result) pkgmgr.Manager {
	if found.Found {
		return found.Manager
	}
	return pkgmgr.Uv
}

func createManifest(ctx context.Context, opts Options, m pkgmgr.Manager, res *Result) error {
	ctx, cancel := context.WithTimeout(ctx, opts.InitTimeout)
	defer cancel()

	opts.Logger.Info("creating manifest", "package_manager", m.Identifier(), "command", m.DescribeInitCommand(opts.ProjectName))
	if err := m.CreateManifest(ctx, opts.Runner, opts.Fs, opts.Paths.Root, opts.ProjectName); err != nil {
		return err
	}
	res.ManifestCreated = true
	fmt.Fprintf(opts.Out, "Created %s (%s)\n", paths.ManifestFileName, m.DescribeInitCommand(opts.ProjectName))
	return nil
}

func reconcileManifest(opts Options, m pkgmgr.Manager, res *Result) error {
	outcome, err := reconcile.MergeBackendIntoManifest(opts.Fs, m, opts.Paths.Root)
	if err != nil {
		if outcome.Kind == reconcile.Conflict || outcome.Kind == reconcile.ManifestMissing {
			res.Outcome = outcome.Kind.String()
			res.reconciled = &outcome
		}
		return err
	}
	res.Outcome = outcome.Kind.String()
	res.reconciled = &outcome
	opts.Logger.Info("reconciled build backend", "package_manager", m.Identifier(), "backend", m.Backend().Identifier(), "outcome", res.Outcome)

	switch outcome.Kind {
	case reconcile.Merged:
		fmt.Fprintf(opts.Out, "Configured %s build backend (%s) in %s\n", m.DisplayName(), m.Backend().Identifier(), paths.ManifestFileName)
	case reconcile.NoOp:
		fmt.Fprintf(opts.Out, "%s already configured for %s\n", paths.ManifestFileName, m.DisplayName())
	}
	return nil
}

// degrade reports err and falls back to the completion message.
func degrade(opts Options, res *Result, suggest pkgmgr.Manager, err error) {
	opts.Logger.Warn("package manager setup failed", "error", err)
	res.Warning = err.Error()

	var failed *pkgmgr.CreationFailedError
	if errors.As(err, &failed) {
		fmt.Fprintf(opts.Out, "Could not create %s: %v\n", paths.ManifestFileName, err)
	} else {
		fmt.Fprintf(opts.Out, "Could not configure %s: %v\n", paths.ManifestFileName, err)
	}
	writeCompletion(opts, suggest, res)
}

func writeCompletion(opts Options, suggest pkgmgr.Manager, res *Result) {
	res.Guidance = true
	fmt.Fprint(opts.Out, CompletionMessage(opts.DocsURL, suggest))
}

// CompletionMessage tells the user how to finish setup by hand.
func CompletionMessage(docsURL string, suggest pkgmgr.Manager) string {
	if docsURL == "" {
		docsURL = DefaultDocsURL
	}
	lines := []string{
		"Workspace created successfully!",
		"",
		"To complete setup, either:",
		fmt.Sprintf("1. Configure %s manually (see: %s)", paths.ManifestFileName, docsURL),
		fmt.Sprintf("2. Re-run with: poly create workspace --package-manager %s", suggest.Identifier()),
	}
	return strings.Join(lines, "\n") + "\n"
}
