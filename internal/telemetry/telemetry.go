// Package telemetry provides OpenTelemetry integration for qgate.
//
// Telemetry is disabled by default (no-op providers, zero overhead).
//
// # Configuration
//
//	QGATE_OTEL_ENABLED=true    enable telemetry (default: off)
//	telemetry.enabled: true    same, from the config file
//
// When enabled, spans and metrics are pretty-printed to the writer given to
// Init (stderr for the CLI, so stdout stays the report).
package telemetry

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/thoreinstein/qgate/internal/errors"
)

const (
	instrumentationScope = "github.com/thoreinstein/qgate"
	serviceName          = "qgate"

	// EnvEnabled turns telemetry on regardless of configuration.
	EnvEnabled = "QGATE_OTEL_ENABLED"
)

var (
	mu          sync.Mutex
	shutdownFns []func(context.Context) error
)

// EnabledFromEnv reports whether QGATE_OTEL_ENABLED is "true".
func EnabledFromEnv() bool {
	return os.Getenv(EnvEnabled) == "true"
}

// Init configures OTel providers. When enabled is false this installs no-op
// providers and returns immediately.
func Init(ctx context.Context, enabled bool, w io.Writer, version string) error {
	if !enabled {
		otel.SetTracerProvider(tracenoop.NewTracerProvider())
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
		return nil
	}
	if w == nil {
		w = os.Stderr
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
		resource.WithProcess(),
	)
	if err != nil {
		return errors.Wrap(err, "telemetry: resource")
	}

	traceExp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return errors.Wrap(err, "telemetry: trace exporter")
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(traceExp),
	)

	metricExp, err := stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithPrettyPrint())
	if err != nil {
		return errors.Wrap(err, "telemetry: metric exporter")
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp, sdkmetric.WithInterval(15*time.Second))),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	mu.Lock()
	shutdownFns = append(shutdownFns, tp.Shutdown, mp.Shutdown)
	mu.Unlock()
	return nil
}

// Tracer returns a tracer with the given instrumentation name (or the global scope).
func Tracer(name string) trace.Tracer {
	if name == "" {
		name = instrumentationScope
	}
	return otel.Tracer(name)
}

// Meter returns a meter with the given instrumentation name (or the global scope).
func Meter(name string) metric.Meter {
	if name == "" {
		name = instrumentationScope
	}
	return otel.Meter(name)
}

// Shutdown flushes all spans and metrics and shuts down the providers.
// Call it once at exit with a short-lived context.
func Shutdown(ctx context.Context) {
	mu.Lock()
	fns := shutdownFns
	shutdownFns = nil
	mu.Unlock()

	for _, fn := range fns {
		_ = fn(ctx)
	}
}
