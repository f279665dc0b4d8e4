package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"polylith/internal/prompt"
)

type confirmModel struct {
	question  prompt.Question
	keys      KeyMap
	answered  bool
	yes       bool
	cancelled bool
}

func newConfirmModel(q prompt.Question) confirmModel {
	return confirmModel{question: q, keys: DefaultKeyMap}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.answered, m.yes = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No):
		m.answered = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	var sb strings.Builder
	if m.question.Notice != "" {
		sb.WriteString(noticeStyle.Render(m.question.Notice) + "\n")
	}
	sb.WriteString(HeaderStyle.Render(m.question.Text))
	switch {
	case m.answered && m.yes:
		sb.WriteString(" yes\n")
	case m.answered:
		sb.WriteString(" no\n")
	case m.cancelled:
		sb.WriteString("\n" + faintStyle.Render("  cancelled") + "\n")
	default:
		sb.WriteString("\n" + faintStyle.Render("  "+helpLine(m.keys.Yes, m.keys.No, m.keys.Cancel)) + "\n")
	}
	return sb.String()
}

type chooseModel struct {
	question  prompt.Question
	keys      KeyMap
	cursor    int
	chosen    string
	cancelled bool
}

func newChooseModel(q prompt.Question) chooseModel {
	m := chooseModel{question: q, keys: DefaultKeyMap}
	for i, opt := range q.Options {
		if opt == q.Default {
			m.cursor = i
		}
	}
	return m
}

func (m chooseModel) Init() tea.Cmd { return nil }

func (m chooseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.question.Options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		if len(m.question.Options) > 0 {
			m.chosen = m.question.Options[m.cursor]
		}
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m chooseModel) View() string {
	var sb strings.Builder
	if m.question.Notice != "" {
		sb.WriteString(noticeStyle.Render(m.question.Notice) + "\n")
	}
	sb.WriteString(HeaderStyle.Render(m.question.Text) + "\n")

	if m.chosen != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", m.chosen))
		return sb.String()
	}
	if m.cancelled {
		return sb.String() + faintStyle.Render("  cancelled") + "\n"
	}

	for i, opt := range m.question.Options {
		label := opt
		if opt == m.question.Default {
			label += " (detected)"
		}
		if i == m.cursor {
			sb.WriteString("▸ " + focusedStyle.Render(label) + "\n")
		} else {
			sb.WriteString("  " + faintStyle.Render(label) + "\n")
		}
	}
	sb.WriteString(faintStyle.Render("  "+helpLine(m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Cancel)) + "\n")
	return sb.String()
}

// Prompter asks questions with bubbletea programs bound to In and Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

var _ prompt.Prompter = Prompter{}

// Confirm treats a cancelled prompt as "no".
func (p Prompter) Confirm(q prompt.Question) (bool, error) {
	final, err := p.run(newConfirmModel(q))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	return m.answered && m.yes, nil
}

func (p Prompter) Choose(q prompt.Question) (string, bool, error) {
	final, err := p.run(newChooseModel(q))
	if err != nil {
		return "", false, err
	}
	m := final.(chooseModel)
	if m.cancelled || m.chosen == "" {
		return "", false, nil
	}
	return m.chosen, true, nil
}

func (p Prompter) run(model tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithOutput(p.Out)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	return tea.NewProgram(model, opts...).Run()
}
