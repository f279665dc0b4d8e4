package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Themes are the workspace structure themes poly can scaffold.
var Themes = []string{"tdd", "loose"}

var interactiveModes = []string{InteractiveAuto, InteractiveAlways, InteractiveNever}

// ValidationError captures a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return strings.TrimSpace(e.Field + " " + e.Message)
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(Themes, c.Theme) {
		errs = append(errs, ValidationError{Field: "theme", Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(Themes, ", "), c.Theme)})
	}
	if c.InitTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "init_timeout", Message: fmt.Sprintf("must be positive, got %s", c.InitTimeout)})
	}
	if !slices.Contains(interactiveModes, c.Interactive) {
		errs = append(errs, ValidationError{Field: "interactive", Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(interactiveModes, ", "), c.Interactive)})
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{Field: "log.level", Message: err.Error()})
	}
	return errors.Join(errs...)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
