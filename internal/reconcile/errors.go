package reconcile

import (
	"fmt"

	"polylith/internal/backend"
	"polylith/internal/pkgmgr"
	"polylith/internal/pyproject"
)

// IncompatibleBackendsError is returned when a manifest already declares a
// backend that cannot coexist with the requested one.
type IncompatibleBackendsError struct {
	Existing  backend.Backend
	Requested backend.Backend
}

func (e *IncompatibleBackendsError) Error() string {
	return fmt.Sprintf("incompatible backends: existing %s, new %s", e.Existing.Identifier(), e.Requested.Identifier())
}

// ConflictingBackendError is the user-facing form of an incompatibility,
// naming the package manager that needs the other backend.
type ConflictingBackendError struct {
	Path      string
	Existing  backend.Backend
	Manager   pkgmgr.Manager
	Requested backend.Backend
}

func (e *ConflictingBackendError) Error() string {
	return fmt.Sprintf("conflicting backend configuration in %s: existing %s, but %s requires %s; manual configuration required",
		e.Path, e.Existing.Identifier(), e.Manager.DisplayName(), e.Requested.Identifier())
}

// Unwrap exposes the underlying incompatibility.
func (e *ConflictingBackendError) Unwrap() error {
	return &IncompatibleBackendsError{Existing: e.Existing, Requested: e.Requested}
}

// ManifestMissingError is returned when reconciliation targets an absent or
// empty manifest.
type ManifestMissingError struct {
	Path        string
	InitCommand string
}

func (e *ManifestMissingError) Error() string {
	return fmt.Sprintf("no %s found at %s; run `%s` first to create the project configuration", pyproject.FileName, e.Path, e.InitCommand)
}
