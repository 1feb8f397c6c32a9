//go:build unix

package testrun

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts cmd as a group leader and makes cancellation
// SIGKILL the group.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
