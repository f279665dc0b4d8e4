package tui

import (
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"
)

// OutputMode describes how prompts and results should be rendered.
type OutputMode int

const (
	// ModeTUI uses bubbletea for prompts and styled output.
	ModeTUI OutputMode = iota
	// ModePlain writes unstyled lines and reads answers line by line.
	ModePlain
	// ModeJSON writes structured JSON output.
	ModeJSON
)

// DetectMode determines the appropriate output mode for the given writer.
func DetectMode(out io.Writer, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	if !isTerminal(out) {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		t := os.Getenv("TERM")
		if t == "" || strings.EqualFold(t, "dumb") {
			return ModePlain
		}
	}
	return ModeTUI
}

// IsInteractive reports whether answers can be read from in.
func IsInteractive(in io.Reader) bool {
	return isTerminal(in)
}

type fdHolder interface {
	Fd() uintptr
}

func isTerminal(v any) bool {
	f, ok := v.(fdHolder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
