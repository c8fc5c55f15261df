// Package executor runs a single external command with a bounded wall-clock
// timeout and captures its exit code, stdout, and stderr as text.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/thoreinstein/qgate/internal/errors"
)

// DefaultTimeout is the per-command wall-clock budget.
const DefaultTimeout = 300 * time.Second

// waitDelay bounds how long Wait keeps draining pipes held open by
// descendants that escaped the process group.
const waitDelay = 5 * time.Second

// Command identifies an executable and its argument vector.
type Command struct {
	Name string
	Args []string
}

// NewCommand builds a Command from an argv slice.
func NewCommand(argv ...string) Command {
	if len(argv) == 0 {
		return Command{}
	}
	return Command{Name: argv[0], Args: append([]string(nil), argv[1:]...)}
}

// String renders the command for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is the outcome of one command. Timeouts and launch failures are
// reported through Result, never through a returned error.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string

	// Err is the cause of a timeout or launch failure, marked with
	// errors.ErrTimeout or errors.ErrLaunch. Nil when the process ran.
	Err error
}

// Combined returns stdout followed by stderr.
func (r Result) Combined() string {
	return r.Stdout + r.Stderr
}

// Executor runs commands. Implementations must never leave a child running
// when Run returns.
type Executor interface {
	Run(ctx context.Context, cmd Command, dir string) Result
}

// ProcessExecutor implements Executor using os/exec.
type ProcessExecutor struct {
	timeout time.Duration
}

// New creates a ProcessExecutor. A non-positive timeout selects DefaultTimeout.
func New(timeout time.Duration) *ProcessExecutor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ProcessExecutor{timeout: timeout}
}

// Timeout returns the configured per-command budget.
func (e *ProcessExecutor) Timeout() time.Duration {
	return e.timeout
}

// Run executes cmd in dir and waits for it, subject to the timeout.
func (e *ProcessExecutor) Run(ctx context.Context, cmd Command, dir string) Result {
	if cmd.Name == "" {
		return launchFailure(errors.ErrEmptyCommand)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// #nosec G204 -- commands come from the project's own qgate configuration.
	c := exec.Command(cmd.Name, cmd.Args...)
	c.Dir = dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.WaitDelay = waitDelay
	setProcessGroup(c)

	if err := c.Start(); err != nil {
		return launchFailure(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- c.Wait()
	}()

	select {
	case <-ctx.Done():
		_ = killProcessGroup(c)
		<-done
		if ctx.Err() == context.DeadlineExceeded {
			return Result{
				ExitCode: 1,
				Stderr:   TimeoutMessage(e.timeout),
				Err:      errors.Mark(errors.Wrapf(ctx.Err(), "%s", cmd), errors.ErrTimeout),
			}
		}
		return launchFailure(ctx.Err())
	case err := <-done:
		res := Result{
			Stdout: decode(stdout.Bytes()),
			Stderr: decode(stderr.Bytes()),
		}
		if errors.Is(err, exec.ErrWaitDelay) && c.ProcessState != nil {
			res.ExitCode = c.ProcessState.ExitCode()
			return res
		}
		if err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				return launchFailure(err)
			}
			res.ExitCode = exitErr.ExitCode()
			// Killed by a signal we did not send.
			if res.ExitCode < 0 {
				res.ExitCode = 1
			}
		}
		return res
	}
}

// TimeoutMessage is the synthetic stderr for a command that exceeded d.
func TimeoutMessage(d time.Duration) string {
	if d > 0 && d%time.Minute == 0 {
		n := int(d / time.Minute)
		if n == 1 {
			return "Command timed out after 1 minute"
		}
		return fmt.Sprintf("Command timed out after %d minutes", n)
	}
	return "Command timed out after " + d.String()
}

func launchFailure(err error) Result {
	return Result{
		ExitCode: 1,
		Stderr:   "Error running command: " + err.Error(),
		Err:      errors.Mark(err, errors.ErrLaunch),
	}
}

// decode converts captured bytes to text, replacing invalid UTF-8.
func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

var _ Executor = (*ProcessExecutor)(nil)
