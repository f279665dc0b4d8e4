// Package reconcile merges a package manager's build backend configuration
// into a workspace manifest, refusing to overwrite a foreign backend.
package reconcile

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"polylith/internal/backend"
	"polylith/internal/pkgmgr"
	"polylith/internal/pyproject"
)

// Kind classifies the result of one reconciliation attempt.
type Kind int

const (
	NoOp Kind = iota
	Merged
	Conflict
	ManifestMissing
)

func (k Kind) String() string {
	switch k {
	case NoOp:
		return "no-op"
	case Merged:
		return "merged"
	case Conflict:
		return "conflict"
	case ManifestMissing:
		return "manifest-missing"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is produced once per attempt. Document is set for Merged;
// Existing and Requested for Conflict; Message for Conflict and
// ManifestMissing.
type Outcome struct {
	Kind      Kind
	Path      string
	Document  pyproject.Document
	Existing  backend.Backend
	Requested backend.Backend
	Message   string

	err error
}

// Err returns the typed error behind a Conflict or ManifestMissing outcome.
func (o Outcome) Err() error { return o.err }

// MergeBackendIfCompatible returns doc with b's configuration merged in. An
// existing backend that is declared and incompatible with b yields an
// *IncompatibleBackendsError.
func MergeBackendIfCompatible(doc pyproject.Document, b backend.Backend) (pyproject.Document, error) {
	existing := backend.Detect(doc)
	if !existing.IsNone() && !existing.CompatibleWith(b) {
		return nil, &IncompatibleBackendsError{Existing: existing, Requested: b}
	}

	fragment, err := b.Config()
	if err != nil {
		return nil, err
	}
	return pyproject.MergeDeep(doc, fragment), nil
}

// Reconcile decides what merging m's backend into doc would do, without
// touching storage. manifestPath only feeds messages.
func Reconcile(doc pyproject.Document, m pkgmgr.Manager, manifestPath string) (Outcome, error) {
	requested := m.Backend()

	if doc.IsEmpty() {
		missing := &ManifestMissingError{
			Path:        manifestPath,
			InitCommand: m.InitCommand(projectName(manifestPath)),
		}
		return Outcome{Kind: ManifestMissing, Path: manifestPath, Requested: requested, Message: missing.Error(), err: missing}, nil
	}

	merged, err := MergeBackendIfCompatible(doc, requested)
	if err != nil {
		var incompatible *IncompatibleBackendsError
		if !errors.As(err, &incompatible) {
			return Outcome{}, err
		}
		conflict := &ConflictingBackendError{
			Path:      manifestPath,
			Existing:  incompatible.Existing,
			Manager:   m,
			Requested: incompatible.Requested,
		}
		return Outcome{
			Kind:      Conflict,
			Path:      manifestPath,
			Existing:  incompatible.Existing,
			Requested: incompatible.Requested,
			Message:   conflict.Error(),
			err:       conflict,
		}, nil
	}

	if pyproject.Equal(doc, merged) {
		return Outcome{Kind: NoOp, Path: manifestPath, Existing: backend.Detect(doc), Requested: requested}, nil
	}
	return Outcome{Kind: Merged, Path: manifestPath, Document: merged, Existing: backend.Detect(doc), Requested: requested}, nil
}

// MergeBackendIntoManifest reconciles the manifest under root with m's
// backend and writes it back when it changed. Running it twice leaves the
// file as the first run wrote it.
func MergeBackendIntoManifest(fsys afero.Fs, m pkgmgr.Manager, root string) (Outcome, error) {
	path := filepath.Join(root, pyproject.FileName)

	doc, err := pyproject.Load(fsys, path)
	if err != nil {
		return Outcome{}, err
	}

	outcome, err := Reconcile(doc, m, path)
	if err != nil {
		return outcome, err
	}

	switch outcome.Kind {
	case ManifestMissing, Conflict:
		return outcome, outcome.Err()
	case Merged:
		if err := pyproject.Write(fsys, outcome.Document, path); err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}

func projectName(manifestPath string) string {
	return filepath.Base(filepath.Dir(manifestPath))
}
