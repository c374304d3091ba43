package util

import (
	"fmt"
	"os/exec"
)

// HasCommand checks if a command is available in the system PATH.
func HasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// RequireCommand returns a descriptive error when name is not in PATH.
func RequireCommand(name string) error {
	if name == "" {
		return fmt.Errorf("empty command name")
	}
	if !HasCommand(name) {
		return fmt.Errorf("%s not found in PATH", name)
	}
	return nil
}
