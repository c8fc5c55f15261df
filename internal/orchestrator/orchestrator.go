// Package orchestrator runs the quality gates in their fixed order and
// aggregates the results.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/thoreinstein/qgate/internal/advisor"
	"github.com/thoreinstein/qgate/internal/check"
	"github.com/thoreinstein/qgate/internal/config"
	"github.com/thoreinstein/qgate/internal/executor"
	"github.com/thoreinstein/qgate/internal/logging"
	"github.com/thoreinstein/qgate/internal/report"
	"github.com/thoreinstein/qgate/internal/telemetry"
)

const startupLine = "Starting code quality validations..."

// Outcome is the aggregate of one run.
type Outcome struct {
	RunID    string
	Results  []check.Result
	Duration time.Duration
}

// AllPassed reports whether no check failed.
func (o Outcome) AllPassed() bool {
	return report.AllPassed(o.Results)
}

// ExitCode is 1 if any check failed, else 0.
func (o Outcome) ExitCode() int {
	return report.ExitCode(o.Results)
}

// Orchestrator owns one Runner per check kind.
type Orchestrator struct {
	runners     []*check.Runner
	progress    io.Writer
	newID       func() string
	instruments *telemetry.CheckInstruments
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithProgress sets where startup and per-check progress lines go.
// The default discards them.
func WithProgress(w io.Writer) Option {
	return func(o *Orchestrator) {
		if w != nil {
			o.progress = w
		}
	}
}

// WithRunID fixes the run ID generator.
func WithRunID(fn func() string) Option {
	return func(o *Orchestrator) {
		o.newID = fn
	}
}

// New builds an Orchestrator that executes cfg's commands in workdir.
func New(cfg *config.Config, workdir string, exec executor.Executor, opts ...Option) *Orchestrator {
	adv := advisor.New(cfg.LintFixCommand)
	argv := map[check.Kind][]string{
		check.KindTypeCheck: cfg.Commands.TypeCheck,
		check.KindLint:      cfg.Commands.Lint,
		check.KindTests:     cfg.Commands.Test,
	}

	o := &Orchestrator{
		progress:    io.Discard,
		newID:       uuid.NewString,
		instruments: telemetry.NewCheckInstruments(),
	}
	for _, kind := range check.Kinds() {
		cmd := executor.NewCommand(argv[kind]...)
		o.runners = append(o.runners, check.NewRunner(kind, cmd, workdir, exec, adv))
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes every check sequentially. A failing check never stops the
// ones after it.
func (o *Orchestrator) Run(ctx context.Context) Outcome {
	runID := o.newID()
	logger := logging.FromContext(ctx).With("run_id", runID)
	started := time.Now()

	fmt.Fprintf(o.progress, "%s\n\n", startupLine)

	results := make([]check.Result, 0, len(o.runners))
	for _, r := range o.runners {
		fmt.Fprintf(o.progress, "🔍 Running %s (%s)...\n", r.Kind(), r.Command())
		logger.Debug("check starting", "check", r.Kind(), "command", r.Command().String())

		cctx, span, t0 := o.instruments.Start(ctx, string(r.Kind()), runID)
		res := r.Run(cctx)
		elapsed := o.instruments.Done(cctx, span, t0, string(r.Kind()), string(res.Status), res.ExitCode)

		attrs := []any{
			"check", res.Name,
			"status", res.Status,
			"exit_code", res.ExitCode,
			"errors", len(res.Errors),
			"duration", elapsed,
		}
		if res.Failed() {
			logger.Warn("check failed", attrs...)
		} else {
			logger.Info("check finished", attrs...)
		}
		results = append(results, res)
	}

	out := Outcome{RunID: runID, Results: results, Duration: time.Since(started)}
	logger.Info("validation finished",
		"all_passed", out.AllPassed(),
		"failed", len(report.Failed(results)),
		"duration", out.Duration,
	)
	return out
}
