// Package logging provides structured logging for qgate using slog.
//
// Logs are diagnostics, not output: the validation report owns stdout and
// every logger built here writes to stderr (or a log file) by default.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// Code deeper in the call tree retrieves it with [FromContext], which falls
// back to [slog.Default] when no logger was attached.
//
// # Testing
//
// [ForTest] routes log output through t.Log so it only shows for failing
// tests or under -v. [NewDiscard] drops everything.
package logging
