//go:build !unix

package process

import "os/exec"

func killedByInterrupt(*exec.ExitError) bool {
	return false
}
