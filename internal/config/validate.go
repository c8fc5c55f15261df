package config

import (
	"strings"

	"github.com/thoreinstein/qgate/internal/errors"
	"github.com/thoreinstein/qgate/internal/report"
)

// Validation errors for configuration fields.
var (
	// ErrNonPositiveDuration indicates a timeout or debounce <= 0.
	ErrNonPositiveDuration = errors.New("must be positive")

	// ErrEmptyCommand indicates a check command with no executable.
	ErrEmptyCommand = errors.ErrEmptyCommand
)

// Validate checks cfg and returns every problem found, or nil.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Timeout <= 0 {
		errs = append(errs, &FieldError{Field: "timeout", Value: cfg.Timeout.String(), Err: ErrNonPositiveDuration})
	}
	if cfg.Watch.Debounce <= 0 {
		errs = append(errs, &FieldError{Field: "watch.debounce", Value: cfg.Watch.Debounce.String(), Err: ErrNonPositiveDuration})
	}
	if _, err := report.ParseFormat(cfg.Format); err != nil {
		errs = append(errs, &FieldError{Field: "format", Value: cfg.Format, Err: errors.ErrUnknownFormat})
	}

	for _, c := range []struct {
		field string
		argv  []string
	}{
		{"commands.typecheck", cfg.Commands.TypeCheck},
		{"commands.lint", cfg.Commands.Lint},
		{"commands.test", cfg.Commands.Test},
	} {
		if len(c.argv) == 0 || strings.TrimSpace(c.argv[0]) == "" {
			errs = append(errs, &FieldError{Field: c.field, Value: strings.Join(c.argv, " "), Err: ErrEmptyCommand})
		}
	}

	return errs
}

// FieldError reports an invalid value for one config key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
