// Package pkgmgr models the package managers a Polylith workspace can be
// configured for. Each manager is bound to exactly one build backend.
package pkgmgr

import (
	"fmt"
	"strings"

	"polylith/internal/backend"
)

// Manager is one of the supported package managers.
type Manager int

const (
	Uv Manager = iota
	Hatch
	Poetry
	Pdm
)

var all = []Manager{Uv, Hatch, Poetry, Pdm}

// All returns every manager in canonical order.
func All() []Manager {
	return append([]Manager(nil), all...)
}

// Identifiers returns the lowercase identifiers in canonical order.
func Identifiers() []string {
	ids := make([]string, len(all))
	for i, m := range all {
		ids[i] = m.Identifier()
	}
	return ids
}

// UnsupportedError reports an identifier outside the supported set.
type UnsupportedError struct {
	Value        string
	ValidOptions []string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported package manager '%s' (valid options: %s)", e.Value, strings.Join(e.ValidOptions, ", "))
}

// Parse resolves an identifier, ignoring case and surrounding whitespace.
func Parse(s string) (Manager, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, m := range all {
		if m.Identifier() == needle {
			return m, nil
		}
	}
	return 0, &UnsupportedError{Value: s, ValidOptions: Identifiers()}
}

// Identifier returns the canonical lowercase name.
func (m Manager) Identifier() string {
	switch m {
	case Uv:
		return "uv"
	case Hatch:
		return "hatch"
	case Poetry:
		return "poetry"
	case Pdm:
		return "pdm"
	default:
		return fmt.Sprintf("Manager(%d)", int(m))
	}
}

func (m Manager) String() string { return m.Identifier() }

// DisplayName returns the name shown in user-facing messages.
func (m Manager) DisplayName() string {
	switch m {
	case Uv:
		return "UV"
	case Hatch:
		return "Hatch"
	case Poetry:
		return "Poetry"
	case Pdm:
		return "PDM"
	default:
		return m.Identifier()
	}
}

// Backend returns the build backend the manager requires.
func (m Manager) Backend() backend.Backend {
	switch m {
	case Uv, Hatch:
		return backend.Hatchling
	case Poetry:
		return backend.PoetryCore
	case Pdm:
		return backend.Pdm
	default:
		return backend.None
	}
}

// InitCommandArgs returns the native argv that creates a minimal manifest for
// name. The second result is false when the manager has no such command.
func (m Manager) InitCommandArgs(name string) ([]string, bool) {
	switch m {
	case Uv:
		return []string{"uv", "init", "--bare", "--name", name}, true
	case Poetry:
		return []string{"poetry", "init", "--name", name, "--version", defaultVersion, "--no-interaction"}, true
	case Pdm:
		return []string{"pdm", "init", "--name", name, "--version", defaultVersion, "--no-interaction"}, true
	default:
		return nil, false
	}
}

// DescribeInitCommand renders what CreateManifest will do, for display before
// it runs.
func (m Manager) DescribeInitCommand(name string) string {
	args, ok := m.InitCommandArgs(name)
	if !ok {
		return "basic template (no minimal init available)"
	}
	return strings.Join(args, " ")
}

// InitCommand is the command users are told to run to create a manifest
// themselves.
func (m Manager) InitCommand(name string) string {
	switch m {
	case Uv:
		return "uv init --name " + name
	case Hatch:
		return "hatch new --cli " + name
	case Poetry:
		return "poetry init --name " + name
	case Pdm:
		return "pdm init --name " + name
	default:
		return ""
	}
}
