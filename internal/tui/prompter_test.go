package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"polylith/internal/prompt"
	"polylith/internal/tools"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		yes       bool
		answered  bool
		cancelled bool
	}{
		{"yes", runeKey('y'), true, true, false},
		{"upper yes", runeKey('Y'), true, true, false},
		{"no", runeKey('n'), false, true, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newConfirmModel(prompt.Question{Kind: prompt.Confirm, Text: "Configure?"})
			updated, cmd := m.Update(tt.msg)
			got := updated.(confirmModel)
			if got.yes != tt.yes || got.answered != tt.answered || got.cancelled != tt.cancelled {
				t.Fatalf("got yes=%v answered=%v cancelled=%v", got.yes, got.answered, got.cancelled)
			}
			if cmd == nil {
				t.Fatal("expected tea.Quit command")
			}
		})
	}
}

func TestConfirmModelIgnoresOtherKeys(t *testing.T) {
	m := newConfirmModel(prompt.Question{Kind: prompt.Confirm, Text: "Configure?"})
	updated, cmd := m.Update(runeKey('x'))
	if cmd != nil {
		t.Fatal("unexpected command for unbound key")
	}
	if view := updated.View(); !strings.Contains(view, "Configure?") {
		t.Fatalf("view missing question: %q", view)
	}
}

func TestChooseModelNavigation(t *testing.T) {
	q := prompt.Question{Kind: prompt.Choose, Text: "Which?", Options: []string{"uv", "hatch", "poetry", "pdm"}}
	var model tea.Model = newChooseModel(q)

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyDown},
		runeKey('j'),
		{Type: tea.KeyUp},
		{Type: tea.KeyDown},
		{Type: tea.KeyDown},
		{Type: tea.KeyDown},
	} {
		model, _ = model.Update(msg)
	}
	if got := model.(chooseModel).cursor; got != 3 {
		t.Fatalf("cursor = %d, want 3 (clamped)", got)
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}
	if got := model.(chooseModel).chosen; got != "pdm" {
		t.Fatalf("chosen = %q, want pdm", got)
	}
}

func TestChooseModelStartsAtDefault(t *testing.T) {
	q := prompt.Question{Kind: prompt.Choose, Options: []string{"uv", "hatch", "poetry", "pdm"}, Default: "poetry"}
	m := newChooseModel(q)
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	if view := m.View(); !strings.Contains(view, "poetry (detected)") {
		t.Fatalf("view should mark the detected option: %q", view)
	}
}

func TestChooseModelCancel(t *testing.T) {
	m := newChooseModel(prompt.Question{Kind: prompt.Choose, Options: []string{"uv"}})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got := updated.(chooseModel)
	if !got.cancelled || got.chosen != "" {
		t.Fatalf("got cancelled=%v chosen=%q", got.cancelled, got.chosen)
	}
}

func TestChooseModelShowsNotice(t *testing.T) {
	m := newChooseModel(prompt.Question{Kind: prompt.Choose, Options: []string{"uv"}, Notice: "Invalid choice 'x'."})
	if view := m.View(); !strings.Contains(view, "Invalid choice 'x'.") {
		t.Fatalf("view missing notice: %q", view)
	}
}

type slowRunner struct{ delay time.Duration }

func (r slowRunner) Run(ctx context.Context, command string, args []string, opts tools.RunOptions) (tools.RunResult, error) {
	time.Sleep(r.delay)
	return tools.RunResult{Stdout: []byte("ok")}, nil
}

func TestStatusRunner(t *testing.T) {
	var buf bytes.Buffer
	r := StatusRunner{Runner: slowRunner{delay: 250 * time.Millisecond}, W: &buf}

	res, err := r.Run(context.Background(), "uv", []string{"init", "--bare"}, tools.RunOptions{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if string(res.Stdout) != "ok" {
		t.Fatalf("stdout = %q", res.Stdout)
	}
	if !strings.Contains(buf.String(), "Running uv init --bare") {
		t.Fatalf("status output missing command: %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), ")\n") {
		t.Fatalf("expected a final summary line, got %q", buf.String())
	}
}

type failingRunner struct{}

func (failingRunner) Run(context.Context, string, []string, tools.RunOptions) (tools.RunResult, error) {
	return tools.RunResult{}, errors.New("exit status 1")
}

func TestStatusRunnerFailure(t *testing.T) {
	var buf bytes.Buffer
	r := StatusRunner{Runner: failingRunner{}, W: &buf}

	if _, err := r.Run(context.Background(), "pdm", []string{"init"}, tools.RunOptions{}); err == nil {
		t.Fatal("expected error to pass through")
	}
	if !strings.Contains(buf.String(), "✗") || !strings.Contains(buf.String(), "Running pdm init") {
		t.Fatalf("expected failure summary, got %q", buf.String())
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{2500 * time.Millisecond, "2.5s"},
		{42 * time.Second, "42s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
