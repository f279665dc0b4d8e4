// Package backend describes the build backends a Polylith workspace manifest
// can declare and how they relate to each other.
package backend

import (
	"errors"
	"fmt"
	"strings"
)

// Kind enumerates the closed set of backend variants.
type Kind int

const (
	KindNone Kind = iota
	KindHatchling
	KindPoetryCore
	KindPdm
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindHatchling:
		return "hatchling"
	case KindPoetryCore:
		return "poetry-core"
	case KindPdm:
		return "pdm-backend"
	case KindUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrNotConfigurable is returned when configuration is requested for the
// None or Unsupported backend.
var ErrNotConfigurable = errors.New("build backend is not configurable")

// DevModeDirs are the source roots hatchling must expose in dev mode for the
// Polylith layout.
var DevModeDirs = []string{"components", "bases", "development", "."}

// Backend is an immutable build backend value.
type Backend struct {
	kind Kind
	raw  string
}

var (
	None       = Backend{kind: KindNone}
	Hatchling  = Backend{kind: KindHatchling}
	PoetryCore = Backend{kind: KindPoetryCore}
	Pdm        = Backend{kind: KindPdm}
)

// Unsupported wraps a build-backend entry no Polylith tooling understands.
func Unsupported(raw string) Backend {
	return Backend{kind: KindUnsupported, raw: raw}
}

// FromIdentifier classifies a build-backend string as found in a manifest.
// Matching is case-sensitive substring containment, checked in the order
// poetry, hatchling, pdm.
func FromIdentifier(s string) Backend {
	switch {
	case s == "":
		return None
	case strings.Contains(s, "poetry"):
		return PoetryCore
	case strings.Contains(s, "hatchling"):
		return Hatchling
	case strings.Contains(s, "pdm"):
		return Pdm
	default:
		return Unsupported(s)
	}
}

// Kind returns the variant tag.
func (b Backend) Kind() Kind { return b.kind }

// Identifier returns the stable name used for equality and messages. For an
// unsupported backend this is the raw manifest value.
func (b Backend) Identifier() string {
	if b.kind == KindUnsupported {
		return b.raw
	}
	return b.kind.String()
}

func (b Backend) String() string { return b.Identifier() }

// IsNone reports whether no backend is declared.
func (b Backend) IsNone() bool { return b.kind == KindNone }

// CompatibleWith reports whether b and other can coexist in one manifest.
// Absence is compatible with everything; an unsupported backend is
// compatible with nothing, itself included.
func (b Backend) CompatibleWith(other Backend) bool {
	if b.kind == KindUnsupported || other.kind == KindUnsupported {
		return false
	}
	if b.kind == KindNone || other.kind == KindNone {
		return true
	}
	return b.Identifier() == other.Identifier()
}

// EntryPoint returns the build-backend value written to the manifest.
func (b Backend) EntryPoint() string {
	switch b.kind {
	case KindHatchling:
		return "hatchling.build"
	case KindPoetryCore:
		return "poetry.core.masonry.api"
	case KindPdm:
		return "pdm.backend"
	default:
		return ""
	}
}

// Config returns the manifest fragment that configures this backend.
func (b Backend) Config() (map[string]any, error) {
	switch b.kind {
	case KindHatchling:
		dirs := make([]any, len(DevModeDirs))
		for i, d := range DevModeDirs {
			dirs[i] = d
		}
		return map[string]any{
			"build-system": buildSystem("hatchling", b.EntryPoint()),
			"tool": map[string]any{
				"hatch": map[string]any{
					"build": map[string]any{"dev-mode-dirs": dirs},
				},
			},
		}, nil
	case KindPoetryCore:
		return map[string]any{"build-system": buildSystem("poetry-core", b.EntryPoint())}, nil
	case KindPdm:
		return map[string]any{"build-system": buildSystem("pdm-backend", b.EntryPoint())}, nil
	case KindNone:
		return nil, fmt.Errorf("no build backend configuration found: %w", ErrNotConfigurable)
	case KindUnsupported:
		return nil, fmt.Errorf("build backend %q is not supported for Polylith workspaces: %w", b.raw, ErrNotConfigurable)
	default:
		return nil, fmt.Errorf("%s: %w", b.kind, ErrNotConfigurable)
	}
}

func buildSystem(requirement, entryPoint string) map[string]any {
	return map[string]any{
		"requires":      []any{requirement},
		"build-backend": entryPoint,
	}
}
