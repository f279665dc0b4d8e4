// Package tools runs and inspects the external package-manager executables.
package tools

import (
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// ToolInfo captures availability and version details for an external tool.
type ToolInfo struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Probe discovers availability and version information for each named
// executable. A nil context gets a five second budget.
func Probe(ctx context.Context, runner Runner, names []string) []ToolInfo {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}

	result := make([]ToolInfo, 0, len(names))
	for _, name := range names {
		result = append(result, probeOne(ctx, runner, name))
	}
	return result
}

func probeOne(ctx context.Context, runner Runner, name string) ToolInfo {
	path, err := lookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ToolInfo{Name: name, Available: false, Error: "not found"}
		}
		return ToolInfo{Name: name, Available: false, Error: err.Error()}
	}

	res, err := runner.Run(ctx, path, []string{"--version"}, RunOptions{})
	if err != nil {
		return ToolInfo{Name: name, Path: path, Available: true, Error: err.Error()}
	}

	line := firstLine(strings.TrimSpace(string(res.Stdout)))
	return ToolInfo{Name: name, Path: path, Version: normalizeVersion(line), Available: true}
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}

var versionRegex = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)+(?:[.-]?[A-Za-z0-9]+)*`)

// normalizeVersion pulls the version out of lines such as "uv 0.4.18",
// "Poetry (version 1.8.3)" or "PDM, version 2.18.1".
func normalizeVersion(line string) string {
	if match := versionRegex.FindString(line); match != "" {
		return match
	}
	return line
}
