package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const checkScopeName = "github.com/thoreinstein/qgate/checks"

// CheckInstruments records a span and metrics for each check run.
// Instruments come from the global providers, so they are no-ops until Init
// enables telemetry.
type CheckInstruments struct {
	tracer trace.Tracer
	runs   metric.Int64Counter
	dur    metric.Float64Histogram
}

// NewCheckInstruments creates instruments against the current global providers.
func NewCheckInstruments() *CheckInstruments {
	m := Meter(checkScopeName)
	runs, _ := m.Int64Counter("qgate.checks",
		metric.WithDescription("Checks executed, by name and status"),
	)
	dur, _ := m.Float64Histogram("qgate.check.duration",
		metric.WithDescription("Check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	return &CheckInstruments{
		tracer: Tracer(checkScopeName),
		runs:   runs,
		dur:    dur,
	}
}

// Start opens the qgate.check span for the named check.
func (c *CheckInstruments) Start(ctx context.Context, name, runID string) (context.Context, trace.Span, time.Time) {
	ctx, span := c.tracer.Start(ctx, "qgate.check",
		trace.WithAttributes(
			attribute.String("check.name", name),
			attribute.String("qgate.run_id", runID),
		),
	)
	return ctx, span, time.Now()
}

// Done ends the span and records the outcome. A FAIL status marks the span
// as an error.
func (c *CheckInstruments) Done(ctx context.Context, span trace.Span, start time.Time, name, status string, exitCode int) time.Duration {
	elapsed := time.Since(start)
	attrs := []attribute.KeyValue{
		attribute.String("check.name", name),
		attribute.String("check.status", status),
	}

	span.SetAttributes(append(attrs, attribute.Int("process.exit_code", exitCode))...)
	if status == "FAIL" {
		span.SetStatus(codes.Error, name+" failed")
	}
	span.End()

	c.runs.Add(ctx, 1, metric.WithAttributes(attrs...))
	c.dur.Record(ctx, float64(elapsed.Milliseconds()), metric.WithAttributes(attrs...))
	return elapsed
}
