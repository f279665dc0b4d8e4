package workspace

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polylith/internal/backend"
	"polylith/internal/pyproject"
)

const (
	hatchComplete = "[build-system]\nrequires = [\"hatchling\"]\nbuild-backend = \"hatchling.build\"\n\n[tool.hatch.build]\ndev-mode-dirs = [\"components\", \"bases\", \"development\", \".\"]\n"
	projectOnly   = "[project]\nname = \"demo\"\nversion = \"0.1.0\"\n"
)

func TestClassifyState(t *testing.T) {
	tests := []struct {
		name     string
		marker   bool
		manifest *string
		want     State
	}{
		{"empty directory", false, nil, Fresh},
		{"manifest only", false, ptr(projectOnly), Fresh},
		{"marker only", true, nil, ExistingNoManifest},
		{"incomplete manifest", true, ptr(projectOnly), ExistingIncomplete},
		{"complete manifest", true, ptr(hatchComplete), ExistingComplete},
		{"poetry without dev-mode-dirs", true, ptr("[build-system]\nbuild-backend = \"poetry.core.masonry.api\"\n"), ExistingIncomplete},
		{"pdm without dev-mode-dirs", true, ptr("[build-system]\nrequires = [\"pdm-backend\"]\nbuild-backend = \"pdm.backend\"\n"), ExistingIncomplete},
		{"malformed manifest", true, ptr("[build-system\n"), ExistingIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, fs.MkdirAll("/ws", 0o755))
			if tt.marker {
				require.NoError(t, afero.WriteFile(fs, "/ws/workspace.toml", []byte(WorkspaceConfig("demo", "tdd")), 0o644))
			}
			if tt.manifest != nil {
				require.NoError(t, afero.WriteFile(fs, "/ws/pyproject.toml", []byte(*tt.manifest), 0o644))
			}
			assert.Equal(t, tt.want, ClassifyState(fs, "/ws"))
		})
	}
}

func TestDetectExistingBackend(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ws/pyproject.toml", []byte(hatchComplete), 0o644))

	b, err := DetectExistingBackend(fs, "/ws")
	require.NoError(t, err)
	assert.Equal(t, backend.Hatchling, b)

	b, err = DetectExistingBackend(fs, "/missing")
	require.NoError(t, err)
	assert.True(t, b.IsNone())

	require.NoError(t, afero.WriteFile(fs, "/bad/pyproject.toml", []byte("[oops\n"), 0o644))
	_, err = DetectExistingBackend(fs, "/bad")
	assert.True(t, errors.Is(err, pyproject.ErrMalformed))
}

func ptr(s string) *string { return &s }
