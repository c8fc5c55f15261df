package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newPlainHandler(t *testing.T, buf *bytes.Buffer, level slog.Level) *Handler {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	return NewHandler(buf, &slog.HandlerOptions{Level: level})
}

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPlainHandler(t, &buf, slog.LevelDebug))

	now := time.Now()
	logger.Info("check finished", "check", "Lint", "status", "FAIL")

	output := buf.String()
	// Example: 10:00PM INFO  check finished check=Lint status=FAIL
	for _, want := range []string{"INFO ", "check finished", "check=Lint", "status=FAIL"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
	if !strings.Contains(output, now.Format(time.Kitchen)) && !strings.Contains(output, time.Now().Format(time.Kitchen)) {
		t.Errorf("expected kitchen time in output, got: %q", output)
	}
	if !strings.HasSuffix(output, "\n") || strings.Count(output, "\n") != 1 {
		t.Errorf("expected exactly one line, got: %q", output)
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPlainHandler(t, &buf, slog.LevelInfo)).With("run_id", "abc")

	logger.Info("message", "check", "Tests")

	output := buf.String()
	if !strings.Contains(output, "run_id=abc check=Tests") {
		t.Errorf("expected handler attrs before record attrs, got: %q", output)
	}
}

func TestHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPlainHandler(t, &buf, slog.LevelInfo)).WithGroup("exec").With("dir", "/repo")

	logger.Info("spawn", "argv", "pnpm", slog.Group("proc", "pid", 42))

	output := buf.String()
	for _, want := range []string{"exec.dir=/repo", "exec.argv=pnpm", "exec.proc.pid=42"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
}

func TestHandler_ValueFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPlainHandler(t, &buf, slog.LevelInfo))

	logger.Info("done",
		"duration", 1234567*time.Microsecond,
		"command", "pnpm lint",
		"empty", "",
	)

	output := buf.String()
	for _, want := range []string{"duration=1.235s", `command="pnpm lint"`, `empty=""`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
}

func TestHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := newPlainHandler(t, &buf, slog.LevelWarn)

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}
}

func TestHandler_DefaultLevelIsInfo(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, nil)
	if h.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("nil options should default to Info")
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPlainHandler(t, &buf, LevelTrace))

	logger.Log(t.Context(), LevelTrace, "matched line")

	if !strings.Contains(buf.String(), "TRACE matched line") {
		t.Errorf("expected TRACE level name, got: %q", buf.String())
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := newPlainHandler(t, &buf, slog.LevelInfo)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "INFO ") {
		t.Errorf("expected output to start with the level, got: %q", buf.String())
	}
}
