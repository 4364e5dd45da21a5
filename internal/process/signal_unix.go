//go:build unix

package process

import (
	"os/exec"
	"syscall"
)

func killedByInterrupt(err *exec.ExitError) bool {
	ws, ok := err.Sys().(syscall.WaitStatus)
	return ok && ws.Signaled() && ws.Signal() == syscall.SIGINT
}
