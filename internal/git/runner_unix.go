//go:build unix

package git

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// killProcessGroup starts the process in its own group and makes cancellation kill the
// group, so helpers such as git-remote-https die with git and release its pipes.
func killProcessGroup(proc *exec.Cmd) {
	proc.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	proc.Cancel = func() error {
		err := syscall.Kill(-proc.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
