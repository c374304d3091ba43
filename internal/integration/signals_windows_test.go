//go:build windows

package integration

import "os"

// Windows cannot deliver os.Interrupt to another process.
func canInterrupt() bool { return false }

func interrupt(proc *os.Process) error {
	return proc.Kill()
}
