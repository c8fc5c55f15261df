//go:build unix

package executor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/qgate/internal/errors"
)

func TestNew_DefaultTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"zero selects default", 0, DefaultTimeout},
		{"negative selects default", -time.Second, DefaultTimeout},
		{"explicit", 2 * time.Second, 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.timeout).Timeout())
		})
	}
}

func TestProcessExecutor_Run_Success(t *testing.T) {
	e := New(10 * time.Second)

	res := e.Run(t.Context(), NewCommand("sh", "-c", "echo out; echo err >&2"), "")

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, "out\nerr\n", res.Combined())
	assert.NoError(t, res.Err)
}

func TestProcessExecutor_Run_NonZeroExit(t *testing.T) {
	e := New(10 * time.Second)

	res := e.Run(t.Context(), NewCommand("sh", "-c", "echo broken; exit 3"), "")

	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "broken\n", res.Stdout)
	assert.NoError(t, res.Err, "tool-reported failure is not an executor error")
}

func TestProcessExecutor_Run_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	e := New(10 * time.Second)

	res := e.Run(t.Context(), NewCommand("pwd"), dir)

	require.Equal(t, 0, res.ExitCode)
	// macOS tmp dirs resolve through /private.
	assert.True(t, strings.HasSuffix(strings.TrimSpace(res.Stdout), strings.TrimPrefix(dir, "/private")))
}

func TestProcessExecutor_Run_Timeout(t *testing.T) {
	e := New(200 * time.Millisecond)

	start := time.Now()
	res := e.Run(t.Context(), NewCommand("sh", "-c", "echo partial; sleep 30"), "")
	elapsed := time.Since(start)

	assert.Equal(t, 1, res.ExitCode)
	assert.Empty(t, res.Stdout)
	assert.Equal(t, "Command timed out after 200ms", res.Stderr)
	assert.True(t, errors.Is(res.Err, errors.ErrTimeout))
	assert.Less(t, elapsed, 10*time.Second, "child should be killed, not awaited")
}

func TestProcessExecutor_Run_TimeoutKillsDescendants(t *testing.T) {
	e := New(200 * time.Millisecond)

	// The backgrounded sleep holds stdout open; without a group kill Wait
	// would block until it exits.
	start := time.Now()
	res := e.Run(t.Context(), NewCommand("sh", "-c", "sleep 30 & sleep 30"), "")

	assert.Equal(t, 1, res.ExitCode)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestProcessExecutor_Run_LaunchFailure(t *testing.T) {
	e := New(time.Second)

	res := e.Run(t.Context(), NewCommand("qgate-definitely-not-a-command"), "")

	assert.Equal(t, 1, res.ExitCode)
	assert.Empty(t, res.Stdout)
	assert.True(t, strings.HasPrefix(res.Stderr, "Error running command: "), res.Stderr)
	assert.True(t, errors.Is(res.Err, errors.ErrLaunch))
}

func TestProcessExecutor_Run_EmptyCommand(t *testing.T) {
	res := New(time.Second).Run(t.Context(), Command{}, "")

	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "Error running command: command is empty", res.Stderr)
	assert.True(t, errors.Is(res.Err, errors.ErrLaunch))
	assert.True(t, errors.Is(res.Err, errors.ErrEmptyCommand))
}

func TestProcessExecutor_Run_InvalidUTF8(t *testing.T) {
	e := New(10 * time.Second)

	res := e.Run(t.Context(), NewCommand("printf", `ok\377\376done`), "")

	require.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "ok�done", res.Stdout)
}

func TestTimeoutMessage(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{DefaultTimeout, "Command timed out after 5 minutes"},
		{time.Minute, "Command timed out after 1 minute"},
		{90 * time.Second, "Command timed out after 1m30s"},
		{500 * time.Millisecond, "Command timed out after 500ms"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeoutMessage(tt.d))
		})
	}
}

func TestCommand(t *testing.T) {
	c := NewCommand("pnpm", "lint")
	assert.Equal(t, "pnpm", c.Name)
	assert.Equal(t, []string{"lint"}, c.Args)
	assert.Equal(t, "pnpm lint", c.String())

	assert.Equal(t, Command{}, NewCommand())
}
