package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestStatusCommandTableOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/ws/bases", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/ws/uv.lock", nil, 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runPoly(t, fs, "", "status", "--directory", "/ws")
	if err != nil {
		t.Fatalf("status command returned error: %v", err)
	}

	for _, want := range []string{
		"WORKSPACE: /ws",
		"State:",
		"fresh",
		"missing components/, projects/, development/, workspace.toml",
		"no pyproject.toml",
		"uv (from lock-file uv.lock)",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output, got %q", want, stdout)
		}
	}
}

func TestStatusCommandJSONAfterCreate(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, _, err := runPoly(t, fs, "", "create", "workspace", "--directory", "/ws", "--name", "demo", "--package-manager", "hatch"); err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	stdout, _, err := runPoly(t, fs, "", "status", "--directory", "/ws", "--json")
	if err != nil {
		t.Fatalf("status command returned error: %v", err)
	}

	var report statusReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", stdout, err)
	}
	if report.State != "existing-complete" {
		t.Fatalf("got state %q, want existing-complete", report.State)
	}

	statuses := map[string]string{}
	for _, c := range report.Checks {
		statuses[c.Name] = c.Status
	}
	want := map[string]string{"Structure": "ok", "Manifest": "ok", "Backend": "complete", "Manager": "warn"}
	for name, status := range want {
		if statuses[name] != status {
			t.Fatalf("check %s: got %q, want %q (all: %v)", name, statuses[name], status, statuses)
		}
	}
}

func TestStatusCommandMalformedManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/ws/pyproject.toml", []byte("[build-system\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runPoly(t, fs, "", "status", "--directory", "/ws", "--json")
	if err != nil {
		t.Fatalf("status command returned error: %v", err)
	}
	if !strings.Contains(stdout, "invalid TOML syntax") {
		t.Fatalf("expected malformed manifest summary, got %q", stdout)
	}
}

func TestStatusCommandMissingDirectory(t *testing.T) {
	_, _, err := runPoly(t, afero.NewMemMapFs(), "", "status", "--directory", "/nope")
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing directory error, got %v", err)
	}
}

func TestStateStatus(t *testing.T) {
	tests := map[string]string{
		"fresh":                "missing",
		"existing-no-manifest": "manifest-missing",
		"existing-incomplete":  "incomplete",
		"existing-complete":    "complete",
	}
	for state, want := range tests {
		if got := stateStatus(state); got != want {
			t.Errorf("stateStatus(%q) = %q, want %q", state, got, want)
		}
	}
}
