package workspace

import (
	"fmt"

	"github.com/spf13/afero"

	"polylith/internal/backend"
	"polylith/internal/paths"
	"polylith/internal/pyproject"
)

// State classifies a target directory. It is recomputed on every call.
type State int

const (
	Fresh State = iota
	ExistingNoManifest
	ExistingIncomplete
	ExistingComplete
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case ExistingNoManifest:
		return "existing-no-manifest"
	case ExistingIncomplete:
		return "existing-incomplete"
	case ExistingComplete:
		return "existing-complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ClassifyState inspects root without ever failing. A directory holding a
// manifest but no workspace.toml is Fresh, and an unreadable manifest
// counts as incomplete.
func ClassifyState(fsys afero.Fs, root string) State {
	wp := paths.New(root)
	hasMarker, _ := paths.Exists(fsys, wp.WorkspaceFile)
	hasManifest, _ := paths.Exists(fsys, wp.Manifest)

	switch {
	case !hasMarker:
		return Fresh
	case !hasManifest:
		return ExistingNoManifest
	}

	doc, err := pyproject.Load(fsys, wp.Manifest)
	if err != nil {
		return ExistingIncomplete
	}
	if backend.HasCompleteBuildSystem(doc) {
		return ExistingComplete
	}
	return ExistingIncomplete
}

// DetectExistingBackend reads the backend declared under root. Unlike
// ClassifyState a malformed manifest is an error here.
func DetectExistingBackend(fsys afero.Fs, root string) (backend.Backend, error) {
	doc, err := pyproject.Load(fsys, paths.New(root).Manifest)
	if err != nil {
		return backend.None, err
	}
	return backend.Detect(doc), nil
}
