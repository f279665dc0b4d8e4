package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"polylith/internal/detect"
	"polylith/internal/pkgmgr"
)

// Prompter asks one question at a time. Choose returns ok=false when the
// user backs out without choosing.
type Prompter interface {
	Confirm(q Question) (bool, error)
	Choose(q Question) (choice string, ok bool, err error)
}

// Run asks questions through p until Resolve reaches a decision. The bool is
// false when the user declined.
func Run(p Prompter, suggested detect.Result) (pkgmgr.Manager, bool, error) {
	var answers []string
	for {
		step := Resolve(suggested, answers)
		switch {
		case step.Done:
			return step.Manager, true, nil
		case step.Declined:
			return 0, false, nil
		}

		q := *step.Question
		switch q.Kind {
		case Confirm:
			yes, err := p.Confirm(q)
			if err != nil {
				return 0, false, err
			}
			answers = append(answers, yesNo(yes))
		case Choose:
			choice, ok, err := p.Choose(q)
			if err != nil {
				return 0, false, err
			}
			if !ok {
				return 0, false, nil
			}
			answers = append(answers, choice)
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

// LinePrompter reads answers line by line, for terminals without a TUI.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter reading from r and writing to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(r), out: w}
}

func (p *LinePrompter) Confirm(q Question) (bool, error) {
	if q.Notice != "" {
		fmt.Fprintln(p.out, q.Notice)
	}
	for {
		fmt.Fprintf(p.out, "%s ", q.Text)
		line, err := p.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		if yes, ok := ParseYesNo(line); ok {
			return yes, nil
		}
		fmt.Fprintln(p.out, confirmRetry)
	}
}

func (p *LinePrompter) Choose(q Question) (string, bool, error) {
	if q.Notice != "" {
		fmt.Fprintln(p.out, q.Notice)
	}
	if q.Default != "" {
		fmt.Fprintf(p.out, "%s [%s] ", q.Text, q.Default)
	} else {
		fmt.Fprintf(p.out, "%s ", q.Text)
	}
	line, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		return "", false, err
	}
	return line, true, nil
}

// readLine returns io.EOF only when no characters preceded end of input.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
