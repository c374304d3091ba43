//go:build !windows

package integration

import (
	"os"
	"syscall"
)

func canInterrupt() bool { return true }

func interrupt(proc *os.Process) error {
	return proc.Signal(syscall.SIGINT)
}
