package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"polylith/internal/tools"
)

// commandSpinner animates one line on w until finish is called.
type commandSpinner struct {
	w      io.Writer
	label  string
	start  time.Time
	frames spinner.Spinner
	quit   chan struct{}
	exited chan struct{}
}

func startSpinner(w io.Writer, label string) *commandSpinner {
	s := &commandSpinner{
		w:      w,
		label:  label,
		start:  time.Now(),
		frames: spinner.Dot,
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go s.animate()
	return s
}

func (s *commandSpinner) animate() {
	defer close(s.exited)
	ticker := time.NewTicker(s.frames.FPS)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			frame := s.frames.Frames[i%len(s.frames.Frames)]
			fmt.Fprintf(s.w, "\r\033[K%s %s %s", frame, s.label, faintStyle.Render("("+formatElapsed(time.Since(s.start))+")"))
		}
	}
}

// finish stops the animation and leaves a one-line summary behind.
func (s *commandSpinner) finish(err error) {
	close(s.quit)
	<-s.exited

	mark, status := "✓", "ok"
	if err != nil {
		mark, status = "✗", "error"
	}
	elapsed := formatElapsed(time.Since(s.start))
	fmt.Fprintf(s.w, "\r\033[K%s %s %s\n", StatusStyle(status).Render(mark), s.label, faintStyle.Render("("+elapsed+")"))
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

// StatusRunner shows a spinner on W while each command runs.
type StatusRunner struct {
	Runner tools.Runner
	W      io.Writer
}

var _ tools.Runner = StatusRunner{}

func (r StatusRunner) Run(ctx context.Context, command string, args []string, opts tools.RunOptions) (tools.RunResult, error) {
	s := startSpinner(r.W, "Running "+strings.Join(append([]string{command}, args...), " "))
	res, err := r.Runner.Run(ctx, command, args, opts)
	s.finish(err)
	return res, err
}
