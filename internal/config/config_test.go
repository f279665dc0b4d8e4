package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/nowhere")
	cfg, used, err := Load(afero.NewMemMapFs(), "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if used != "" {
		t.Fatalf("got config file %q, want none", used)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "theme: loose\ninit_timeout: 45s\nlog:\n  level: debug\n"
	if err := afero.WriteFile(fs, "/cfg/config.yaml", []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, used, err := Load(fs, "/cfg/config.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if used != "/cfg/config.yaml" {
		t.Fatalf("got used %q", used)
	}
	if cfg.Theme != "loose" {
		t.Fatalf("got theme %q, want loose", cfg.Theme)
	}
	if cfg.InitTimeout != 45*time.Second {
		t.Fatalf("got timeout %s, want 45s", cfg.InitTimeout)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("got level %q, want debug", cfg.Log.Level)
	}
	if cfg.Interactive != InteractiveAuto {
		t.Fatalf("unset field should keep default, got %q", cfg.Interactive)
	}
}

func TestLoadSearchesConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/xdg/poly/config.yaml", []byte("interactive: never\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, _, err := Load(fs, "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Interactive != InteractiveNever {
		t.Fatalf("got interactive %q, want never", cfg.Interactive)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/nowhere")
	t.Setenv("POLY_THEME", "loose")
	t.Setenv("POLY_LOG_LEVEL", "debug")

	cfg, _, err := Load(afero.NewMemMapFs(), "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Theme != "loose" || cfg.Log.Level != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, _, err := Load(afero.NewMemMapFs(), "/missing.yaml"); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/c.yaml", []byte("theme: fancy\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := Load(fs, "/c.yaml")
	if err == nil || !strings.Contains(err.Error(), "theme") {
		t.Fatalf("got %v, want theme validation error", err)
	}
}

func TestMarshal(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	text := string(data)
	for _, want := range []string{"theme: tdd", "init_timeout: 30s", "interactive: auto", "level: warn"} {
		if !strings.Contains(text, want) {
			t.Fatalf("marshal output %q missing %q", text, want)
		}
	}
}
