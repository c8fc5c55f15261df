//go:build windows

package executor

import "os/exec"

// Windows has no process groups in the Setpgid sense; only the direct child
// is killed.
func setProcessGroup(*exec.Cmd) {}

func killProcessGroup(c *exec.Cmd) error {
	if c.Process == nil {
		return nil
	}
	return c.Process.Kill()
}
