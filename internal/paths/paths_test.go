package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestResolveRelative(t *testing.T) {
	root := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd error: %v", err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatalf("Chdir error: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	wp, err := Resolve("demo")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if !filepath.IsAbs(wp.Root) || filepath.Base(wp.Root) != "demo" {
		t.Fatalf("got root %s, want absolute path ending in demo", wp.Root)
	}
	if wp.Manifest != filepath.Join(wp.Root, "pyproject.toml") {
		t.Fatalf("got manifest %s", wp.Manifest)
	}
	if wp.WorkspaceFile != filepath.Join(wp.Root, "workspace.toml") {
		t.Fatalf("got workspace file %s", wp.WorkspaceFile)
	}
}

func TestBrickDirsOrder(t *testing.T) {
	wp := New("/ws")
	got := wp.BrickDirs()
	want := []string{"/ws/bases", "/ws/components", "/ws/projects", "/ws/development"}
	for i := range want {
		if got[i] != filepath.FromSlash(want[i]) {
			t.Fatalf("BrickDirs()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if rel := wp.Rel(wp.Components); rel != "components" {
		t.Fatalf("Rel = %s, want components", rel)
	}
}

func TestExistenceHelpers(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/ws/bases", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fs, "/ws/workspace.toml", []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		fn   func(afero.Fs, string) (bool, error)
		path string
		want bool
	}{
		{"file exists", FileExists, "/ws/workspace.toml", true},
		{"file is dir", FileExists, "/ws/bases", false},
		{"file missing", FileExists, "/ws/pyproject.toml", false},
		{"dir exists", DirExists, "/ws/bases", true},
		{"dir is file", DirExists, "/ws/workspace.toml", false},
		{"dir missing", DirExists, "/ws/components", false},
		{"exists file", Exists, "/ws/workspace.toml", true},
		{"exists dir", Exists, "/ws/bases", true},
		{"exists missing", Exists, "/ws/none", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(fs, tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsureRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	wp := New("/deep/nested/ws")
	if err := wp.EnsureRoot(fs); err != nil {
		t.Fatalf("EnsureRoot error: %v", err)
	}
	if ok, _ := DirExists(fs, wp.Root); !ok {
		t.Fatal("root not created")
	}
}
