// Package prompt decides which package manager to configure from a sequence
// of user answers. The decision itself does no I/O; a Prompter supplies the
// answers.
package prompt

import (
	"fmt"
	"strings"

	"polylith/internal/detect"
	"polylith/internal/pkgmgr"
)

// QuestionKind distinguishes yes/no questions from choices.
type QuestionKind int

const (
	Confirm QuestionKind = iota
	Choose
)

// Question is the next thing to ask. Notice explains why a question is being
// repeated.
type Question struct {
	Kind    QuestionKind
	Text    string
	Options []string
	Default string
	Notice  string
}

// Step is either a Question or a final decision.
type Step struct {
	Question *Question
	Manager  pkgmgr.Manager
	Done     bool
	Declined bool
}

const (
	confirmText    = "Would you like to configure a package manager now? [y/n]"
	chooseText     = "Which package manager? (%s)"
	confirmRetry   = "Please answer y or n."
	invalidChoice  = "Invalid choice '%s'. Valid options: %s"
	suggestionText = "Detected %s from %s."
)

// Resolve replays answers against the question sequence and returns the next
// step. Answers are compared case-insensitively; an empty choice picks the
// suggested manager when there is one.
func Resolve(suggested detect.Result, answers []string) Step {
	idx := 0
	notice := ""

	for {
		if idx >= len(answers) {
			return Step{Question: confirmQuestion(suggested, notice)}
		}
		yes, ok := ParseYesNo(answers[idx])
		idx++
		if !ok {
			notice = confirmRetry
			continue
		}
		if !yes {
			return Step{Declined: true}
		}
		break
	}

	notice = ""
	for {
		if idx >= len(answers) {
			return Step{Question: chooseQuestion(suggested, notice)}
		}
		answer := strings.TrimSpace(answers[idx])
		idx++
		if answer == "" && suggested.Found {
			return Step{Manager: suggested.Manager, Done: true}
		}
		m, err := pkgmgr.Parse(answer)
		if err != nil {
			notice = fmt.Sprintf(invalidChoice, answer, strings.Join(pkgmgr.Identifiers(), ", "))
			continue
		}
		return Step{Manager: m, Done: true}
	}
}

// ParseYesNo accepts y, yes, n and no in any case.
func ParseYesNo(answer string) (yes bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

func confirmQuestion(suggested detect.Result, notice string) *Question {
	text := confirmText
	if suggested.Found {
		text = fmt.Sprintf(suggestionText, suggested.Manager.Identifier(), suggested.Evidence) + " " + confirmText
	}
	return &Question{Kind: Confirm, Text: text, Notice: notice}
}

func chooseQuestion(suggested detect.Result, notice string) *Question {
	q := &Question{
		Kind:    Choose,
		Text:    fmt.Sprintf(chooseText, strings.Join(pkgmgr.Identifiers(), "/")),
		Options: pkgmgr.Identifiers(),
		Notice:  notice,
	}
	if suggested.Found {
		q.Default = suggested.Manager.Identifier()
	}
	return q
}
