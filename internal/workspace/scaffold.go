package workspace

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"polylith/internal/paths"
)

// Scaffold creates the workspace skeleton under wp.Root. Existing files and
// directories are left alone. It returns the created entries relative to
// the root, in creation order.
func Scaffold(fsys afero.Fs, wp paths.WorkspacePaths, namespace, theme string, logger *slog.Logger) ([]string, error) {
	if err := wp.EnsureRoot(fsys); err != nil {
		return nil, err
	}

	created := make([]string, 0, 10)
	for _, dir := range wp.BrickDirs() {
		if err := ensureDir(fsys, wp, dir, &created, logger); err != nil {
			return created, err
		}
		if err := ensureFile(fsys, wp, filepath.Join(dir, paths.KeepFileName), "", &created, logger); err != nil {
			return created, err
		}
	}

	if err := ensureFile(fsys, wp, wp.WorkspaceFile, WorkspaceConfig(namespace, theme), &created, logger); err != nil {
		return created, err
	}
	if err := ensureFile(fsys, wp, wp.Readme, Readme(namespace), &created, logger); err != nil {
		return created, err
	}
	return created, nil
}

func ensureDir(fsys afero.Fs, wp paths.WorkspacePaths, dir string, created *[]string, logger *slog.Logger) error {
	exists, err := paths.DirExists(fsys, dir)
	if err != nil {
		return fmt.Errorf("check %s: %w", wp.Rel(dir), err)
	}
	if exists {
		logger.Debug("directory exists", "path", dir)
		return nil
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", wp.Rel(dir), err)
	}
	logger.Debug("created directory", "path", dir)
	*created = append(*created, wp.Rel(dir)+"/")
	return nil
}

func ensureFile(fsys afero.Fs, wp paths.WorkspacePaths, path, content string, created *[]string, logger *slog.Logger) error {
	exists, err := paths.Exists(fsys, path)
	if err != nil {
		return fmt.Errorf("check %s: %w", wp.Rel(path), err)
	}
	if exists {
		logger.Debug("file exists", "path", path)
		return nil
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", wp.Rel(path), err)
	}
	logger.Debug("created file", "path", path)
	*created = append(*created, wp.Rel(path))
	return nil
}
