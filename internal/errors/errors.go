package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates every check passed or was skipped.
	ExitSuccess = 0

	// ExitUser indicates at least one check failed, or the user supplied
	// invalid input.
	ExitUser = 1

	// ExitSystem indicates qgate itself could not run (unreadable config,
	// unwritable output, and similar).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrChecksFailed indicates that one or more quality gates reported FAIL.
	ErrChecksFailed = errors.New("validation failed")

	// ErrTimeout indicates a child process exceeded its time budget.
	ErrTimeout = errors.New("command timed out")

	// ErrLaunch indicates a child process could not be started.
	ErrLaunch = errors.New("command could not be started")

	// ErrEmptyCommand indicates a check was configured without an executable.
	ErrEmptyCommand = errors.New("command is empty")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownFormat indicates an unsupported report format was requested.
	ErrUnknownFormat = errors.New("unknown report format")
)

// Re-exported helpers so callers only import this package.
var (
	New   = errors.New
	Newf  = errors.Newf
	Wrap  = errors.Wrap
	Wrapf = errors.Wrapf
	Mark  = errors.Mark
	Is    = errors.Is
	As    = errors.As
	Join  = errors.Join
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError for a broken configuration file.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        errors.Mark(err, ErrInvalidConfig),
		Code:       ExitSystem,
		Suggestion: "Fix the file, or regenerate it with: qgate init --force",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the process exit code from err.
// A nil error maps to ExitSuccess; an error without an ExitError in its
// chain maps to ExitUser.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}
