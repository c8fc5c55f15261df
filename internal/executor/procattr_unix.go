//go:build unix

package executor

import (
	"os/exec"
	"syscall"

	"github.com/thoreinstein/qgate/internal/errors"
)

// setProcessGroup starts the child in its own process group so that tools
// which fork helpers (pnpm → tsc, vitest workers) are killed together.
func setProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(c *exec.Cmd) error {
	if c.Process == nil {
		return nil
	}
	if err := syscall.Kill(-c.Process.Pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return errors.Wrap(err, "kill process group")
	}
	return nil
}
