package pkgmgr

import (
	"errors"
	"strings"
	"testing"

	"polylith/internal/backend"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Manager
	}{
		{"uv", Uv},
		{"UV", Uv},
		{"Hatch", Hatch},
		{"poetry", Poetry},
		{" PDM ", Pdm},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse("invalid")
	if err == nil {
		t.Fatal("expected error for unsupported package manager")
	}

	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedError, got %T", err)
	}
	if unsupported.Value != "invalid" {
		t.Fatalf("got value %q, want invalid", unsupported.Value)
	}

	msg := err.Error()
	for _, want := range []string{"unsupported package manager 'invalid'", "uv, hatch, poetry, pdm"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
}

func TestAllCanonicalOrder(t *testing.T) {
	got := Identifiers()
	want := []string{"uv", "hatch", "poetry", "pdm"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}

	managers := All()
	managers[0] = Pdm
	if All()[0] != Uv {
		t.Fatal("All must return a copy")
	}
}

func TestBackendBinding(t *testing.T) {
	tests := []struct {
		manager Manager
		want    backend.Backend
		display string
	}{
		{Uv, backend.Hatchling, "UV"},
		{Hatch, backend.Hatchling, "Hatch"},
		{Poetry, backend.PoetryCore, "Poetry"},
		{Pdm, backend.Pdm, "PDM"},
	}

	for _, tt := range tests {
		if got := tt.manager.Backend(); got != tt.want {
			t.Fatalf("%s.Backend() = %s, want %s", tt.manager, got, tt.want)
		}
		if got := tt.manager.DisplayName(); got != tt.display {
			t.Fatalf("%s.DisplayName() = %s, want %s", tt.manager, got, tt.display)
		}
	}
}

func TestInitCommandArgs(t *testing.T) {
	tests := []struct {
		manager Manager
		want    string
		ok      bool
	}{
		{Uv, "uv init --bare --name demo", true},
		{Hatch, "", false},
		{Poetry, "poetry init --name demo --version 0.1.0 --no-interaction", true},
		{Pdm, "pdm init --name demo --version 0.1.0 --no-interaction", true},
	}

	for _, tt := range tests {
		t.Run(tt.manager.Identifier(), func(t *testing.T) {
			args, ok := tt.manager.InitCommandArgs("demo")
			if ok != tt.ok {
				t.Fatalf("got ok=%v, want %v", ok, tt.ok)
			}
			if got := strings.Join(args, " "); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeInitCommand(t *testing.T) {
	if got := Hatch.DescribeInitCommand("demo"); got != "basic template (no minimal init available)" {
		t.Fatalf("hatch description = %q", got)
	}
	if got := Uv.DescribeInitCommand("demo"); got != "uv init --bare --name demo" {
		t.Fatalf("uv description = %q", got)
	}
}

func TestInitCommandGuidance(t *testing.T) {
	tests := map[Manager]string{
		Uv:     "uv init --name demo",
		Hatch:  "hatch new --cli demo",
		Poetry: "poetry init --name demo",
		Pdm:    "pdm init --name demo",
	}
	for m, want := range tests {
		if got := m.InitCommand("demo"); got != want {
			t.Fatalf("%s.InitCommand = %q, want %q", m, got, want)
		}
	}
}
