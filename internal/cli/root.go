package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"polylith/internal/config"
	"polylith/internal/logx"
	"polylith/internal/paths"
)

var (
	workspaceDir string
	outputJSON   bool
	logLevel     string
	configPath   string
)

// appFs backs every command. Tests swap in a MemMapFs.
var appFs afero.Fs = afero.NewOsFs()

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "poly",
		Short:         "Polylith workspace tooling for Python",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&workspaceDir, "directory", "", "Path to the workspace directory (default: current directory)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the poly config file")

	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newToolsCmd())

	return cmd
}

// session holds what every command resolves before doing work.
type session struct {
	cfg     config.Config
	paths   paths.WorkspacePaths
	logger  *slog.Logger
	closeFn func() error
}

func (s session) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func openSession(cmd *cobra.Command) (session, error) {
	cfg, _, err := config.Load(appFs, configPath)
	if err != nil {
		return session{}, err
	}

	wp, err := paths.Resolve(workspaceDir)
	if err != nil {
		return session{}, err
	}

	logger, closer, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return session{}, err
	}
	return session{cfg: cfg, paths: wp, logger: logger, closeFn: closer.Close}, nil
}

func newLogger(stderr io.Writer, cfg config.Config) (*slog.Logger, io.Closer, error) {
	raw := cfg.Log.Level
	if logLevel != "" {
		raw = logLevel
	}
	level, err := config.ParseLevel(raw)
	if err != nil {
		return nil, nil, err
	}

	opts := logx.Options{Level: level, Stderr: stderr, JSON: outputJSON}
	if cfg.Log.File {
		dir, err := paths.GlobalLogsDir(appFs)
		if err != nil {
			return nil, nil, err
		}
		opts.Fs = appFs
		opts.LogsDir = dir
	}
	return logx.New(opts)
}
