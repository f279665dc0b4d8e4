package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"polylith/internal/pyproject"
	"polylith/internal/tools"
)

// DefaultInitTimeout bounds a native init command when the caller's context
// carries no deadline.
const DefaultInitTimeout = 30 * time.Second

const defaultVersion = "0.1.0"

// CreationFailedError reports a native init command that did not produce a
// manifest, or a template that could not be written.
type CreationFailedError struct {
	Manager Manager
	Command string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *CreationFailedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to create %s with %s", pyproject.FileName, e.Manager.DisplayName())
	if e.Command != "" {
		fmt.Fprintf(&b, " (%s)", e.Command)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if detail := e.Detail(); detail != "" {
		fmt.Fprintf(&b, ": %s", detail)
	}
	return b.String()
}

func (e *CreationFailedError) Unwrap() error { return e.Err }

// Detail returns the captured diagnostic output, stderr preferred.
func (e *CreationFailedError) Detail() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(e.Stdout)
}

// Template returns the minimal manifest written when a manager has no native
// init command.
func Template(name string) string {
	return fmt.Sprintf("[project]\nname = \"%s\"\nversion = \"%s\"\n", escapeBasic(name), defaultVersion)
}

// CreateManifest creates a fresh manifest in dir. Managers with a native init
// command run it through runner; the others get the template written through
// fsys. Backend configuration is never touched here.
func (m Manager) CreateManifest(ctx context.Context, runner tools.Runner, fsys afero.Fs, dir, name string) error {
	args, ok := m.InitCommandArgs(name)
	if !ok {
		path := filepath.Join(dir, pyproject.FileName)
		if err := afero.WriteFile(fsys, path, []byte(Template(name)), 0o644); err != nil {
			return &CreationFailedError{Manager: m, Err: err}
		}
		return nil
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultInitTimeout)
		defer cancel()
	}

	res, err := runner.Run(ctx, args[0], args[1:], tools.RunOptions{Dir: dir})
	if err == nil {
		return nil
	}

	failure := &CreationFailedError{
		Manager: m,
		Command: strings.Join(args, " "),
		Stdout:  string(res.Stdout),
		Stderr:  string(res.Stderr),
		Err:     err,
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		failure.Err = fmt.Errorf("timed out: %w", context.DeadlineExceeded)
	case errors.Is(err, exec.ErrNotFound):
		failure.Err = fmt.Errorf("%s executable not found: %w", args[0], err)
	}
	return failure
}

// escapeBasic escapes s for a TOML basic string.
func escapeBasic(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return r.Replace(s)
}
