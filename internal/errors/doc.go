// Package errors provides error handling conventions for the qgate CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, and exit code constants.
// It re-exports the wrapping helpers from github.com/cockroachdb/errors
// so the rest of the module imports a single errors package.
//
// # Exit Codes
//
//   - ExitSuccess (0): every check passed or was skipped
//   - ExitUser (1): at least one check failed, or invalid user input
//   - ExitSystem (2): qgate itself could not run
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := qerrors.NewUserError(qerrors.ErrChecksFailed, "")
//	os.Exit(qerrors.ExitCode(err))
package errors
