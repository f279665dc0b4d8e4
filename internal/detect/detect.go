// Package detect infers which package manager a workspace is meant for from
// the invocation, lock files and the manifest, in that order.
package detect

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"polylith/internal/backend"
	"polylith/internal/pkgmgr"
	"polylith/internal/pyproject"
)

// Source names the signal a detection came from.
type Source string

const (
	SourceNone     Source = ""
	SourceCommand  Source = "command"
	SourceLockFile Source = "lock-file"
	SourceManifest Source = "manifest"
)

// Invocation is the process context detection may consult. It is passed in
// rather than read from os.Args and os.Environ so callers control it. Env
// uses the "KEY=value" form of os.Environ.
type Invocation struct {
	Args        []string
	Env         []string
	Interactive bool
}

// Result is the outcome of running the ladder. Evidence names the file or
// argument that decided it.
type Result struct {
	Manager  pkgmgr.Manager
	Found    bool
	Source   Source
	Evidence string
}

// LockFile maps a lock file name to the managers that write it. Names with
// more than one candidate cannot decide on their own.
type LockFile struct {
	Name       string
	Candidates []pkgmgr.Manager
}

// LockFiles are checked in this order; the first unambiguous hit wins.
var LockFiles = []LockFile{
	{Name: "uv.lock", Candidates: []pkgmgr.Manager{pkgmgr.Uv}},
	{Name: "poetry.lock", Candidates: []pkgmgr.Manager{pkgmgr.Poetry}},
	{Name: "pdm.lock", Candidates: []pkgmgr.Manager{pkgmgr.Pdm}},
	{Name: "requirements.lock", Candidates: []pkgmgr.Manager{pkgmgr.Uv, pkgmgr.Hatch}},
}

// Detect runs the ladder against root.
func Detect(fsys afero.Fs, root string, inv Invocation) Result {
	if res, ok := FromCommand(inv.Args); ok {
		return res
	}
	if res, ok := FromRunner(inv); ok {
		return res
	}
	if res, ok := FromLockFiles(fsys, root); ok {
		return res
	}
	if res, ok := FromManifest(fsys, root); ok {
		return res
	}
	return Result{}
}

// FromCommand recognizes `<manager> run ...` and `uvx ...` invocations.
func FromCommand(args []string) (Result, bool) {
	if len(args) == 0 {
		return Result{}, false
	}

	base := strings.TrimSuffix(filepath.Base(args[0]), ".exe")
	if base == "uvx" {
		return Result{Manager: pkgmgr.Uv, Found: true, Source: SourceCommand, Evidence: base}, true
	}
	if len(args) < 2 || args[1] != "run" {
		return Result{}, false
	}
	for _, m := range pkgmgr.All() {
		if m.Identifier() == base {
			return Result{Manager: m, Found: true, Source: SourceCommand, Evidence: base + " run"}, true
		}
	}
	return Result{}, false
}

// runnerEnv lists variables a manager exports into the processes it runs.
// They are checked in this order.
var runnerEnv = []struct {
	Name    string
	Manager pkgmgr.Manager
}{
	{"HATCH_ENV_ACTIVE", pkgmgr.Hatch},
	{"PDM_RUN_CWD", pkgmgr.Pdm},
	{"POETRY_ACTIVE", pkgmgr.Poetry},
	{"UV", pkgmgr.Uv},
}

// uvToolDirs are path fragments of the environments uvx and uv tool install
// put executables in.
var uvToolDirs = []string{"/uv/tools/", "/uv/archive-v"}

// FromRunner recognizes poly started by a manager that does not show up in
// its own argv: an executable inside a uv tool environment, or one of the
// variables in runnerEnv.
func FromRunner(inv Invocation) (Result, bool) {
	if len(inv.Args) > 0 {
		exe := filepath.ToSlash(inv.Args[0])
		for _, dir := range uvToolDirs {
			if strings.Contains(exe, dir) {
				return Result{Manager: pkgmgr.Uv, Found: true, Source: SourceCommand, Evidence: inv.Args[0]}, true
			}
		}
	}

	for _, marker := range runnerEnv {
		if lookupEnv(inv.Env, marker.Name) != "" {
			return Result{Manager: marker.Manager, Found: true, Source: SourceCommand, Evidence: "$" + marker.Name}, true
		}
	}
	return Result{}, false
}

func lookupEnv(env []string, name string) string {
	for i := len(env) - 1; i >= 0; i-- {
		if key, value, ok := strings.Cut(env[i], "="); ok && key == name {
			return value
		}
	}
	return ""
}

// FromLockFiles checks LockFiles in order under root.
func FromLockFiles(fsys afero.Fs, root string) (Result, bool) {
	for _, lock := range LockFiles {
		if len(lock.Candidates) != 1 {
			continue
		}
		if !isFile(fsys, filepath.Join(root, lock.Name)) {
			continue
		}
		return Result{Manager: lock.Candidates[0], Found: true, Source: SourceLockFile, Evidence: lock.Name}, true
	}
	return Result{}, false
}

// FromManifest infers a manager from a declared backend bound to exactly one
// manager. A malformed manifest gives no hint.
func FromManifest(fsys afero.Fs, root string) (Result, bool) {
	doc, err := pyproject.Load(fsys, filepath.Join(root, pyproject.FileName))
	if err != nil {
		return Result{}, false
	}

	declared := backend.Detect(doc)
	if declared.IsNone() || declared.Kind() == backend.KindUnsupported {
		return Result{}, false
	}

	var match []pkgmgr.Manager
	for _, m := range pkgmgr.All() {
		if m.Backend() == declared {
			match = append(match, m)
		}
	}
	if len(match) != 1 {
		return Result{}, false
	}
	return Result{Manager: match[0], Found: true, Source: SourceManifest, Evidence: declared.Identifier()}, true
}

func isFile(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
