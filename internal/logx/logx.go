// Package logx builds the structured logger shared by poly commands.
package logx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/term"
)

// Options configures New.
type Options struct {
	Level slog.Level
	// Stderr receives console logs. Nil discards them.
	Stderr io.Writer
	// JSON forces the JSON handler on Stderr even on a terminal.
	JSON bool
	// Fs and LogsDir enable a timestamped log file when both are set.
	Fs      afero.Fs
	LogsDir string
	Now     func() time.Time
}

// New creates a logger writing text to a terminal stderr and JSON otherwise.
// When a logs directory is configured every record is also appended to a
// timestamped JSON file there. The returned closer releases the file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handlers []slog.Handler
	if opts.Stderr != nil {
		if !opts.JSON && isTerminal(opts.Stderr) {
			handlers = append(handlers, slog.NewTextHandler(opts.Stderr, handlerOpts))
		} else {
			handlers = append(handlers, slog.NewJSONHandler(opts.Stderr, handlerOpts))
		}
	}

	var closer io.Closer = nopCloser{}
	if opts.Fs != nil && opts.LogsDir != "" {
		file, err := openLogFile(opts)
		if err != nil {
			return nil, nil, err
		}
		closer = file
		handlers = append(handlers, slog.NewJSONHandler(file, handlerOpts))
	}

	switch len(handlers) {
	case 0:
		return slog.New(slog.NewTextHandler(io.Discard, handlerOpts)), closer, nil
	case 1:
		return slog.New(handlers[0]), closer, nil
	default:
		return slog.New(fanout(handlers)), closer, nil
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openLogFile(opts Options) (afero.File, error) {
	if err := opts.Fs.MkdirAll(opts.LogsDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure logs directory: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	filename := now().Format("20060102-150405") + ".log"
	file, err := opts.Fs.OpenFile(filepath.Join(opts.LogsDir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
