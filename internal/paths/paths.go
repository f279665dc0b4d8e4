package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Brick and development directory names of a Polylith workspace.
const (
	BasesDir       = "bases"
	ComponentsDir  = "components"
	ProjectsDir    = "projects"
	DevelopmentDir = "development"

	WorkspaceFileName = "workspace.toml"
	ManifestFileName  = "pyproject.toml"
	ReadmeFileName    = "README.md"
	KeepFileName      = ".keep"
)

// WorkspacePaths captures canonical locations inside a workspace root.
type WorkspacePaths struct {
	Root          string
	WorkspaceFile string
	Manifest      string
	Readme        string
	Bases         string
	Components    string
	Projects      string
	Development   string
}

// Resolve determines the workspace root using the optional --directory flag
// or the current working directory when the flag is empty.
func Resolve(dirFlag string) (WorkspacePaths, error) {
	var (
		root string
		err  error
	)

	if dirFlag != "" {
		root, err = filepath.Abs(dirFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return WorkspacePaths{}, fmt.Errorf("resolve workspace root: %w", err)
	}

	return New(root), nil
}

// New returns the paths for an already-resolved root.
func New(root string) WorkspacePaths {
	return WorkspacePaths{
		Root:          root,
		WorkspaceFile: filepath.Join(root, WorkspaceFileName),
		Manifest:      filepath.Join(root, ManifestFileName),
		Readme:        filepath.Join(root, ReadmeFileName),
		Bases:         filepath.Join(root, BasesDir),
		Components:    filepath.Join(root, ComponentsDir),
		Projects:      filepath.Join(root, ProjectsDir),
		Development:   filepath.Join(root, DevelopmentDir),
	}
}

// BrickDirs lists the directories scaffolded with a keep file, in creation
// order.
func (p WorkspacePaths) BrickDirs() []string {
	return []string{p.Bases, p.Components, p.Projects, p.Development}
}

// Rel returns path relative to the root, or path itself when that fails.
func (p WorkspacePaths) Rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return path
	}
	return rel
}

// EnsureRoot makes sure the workspace root exists.
func (p WorkspacePaths) EnsureRoot(fsys afero.Fs) error {
	if err := fsys.MkdirAll(p.Root, 0o755); err != nil {
		return fmt.Errorf("create workspace root: %w", err)
	}
	return nil
}

// GlobalDir returns the user-level poly directory (~/.poly), creating it if
// needed.
func GlobalDir(fsys afero.Fs) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	dir := filepath.Join(home, ".poly")
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create global dir: %w", err)
	}
	return dir, nil
}

// GlobalLogsDir returns ~/.poly/logs, creating it if needed.
func GlobalLogsDir(fsys afero.Fs) (string, error) {
	global, err := GlobalDir(fsys)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(global, "logs")
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create global logs dir: %w", err)
	}
	return dir, nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// Exists reports whether anything exists at path.
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
