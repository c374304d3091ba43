//go:build windows

package lifecycle

import (
	"os"
	"syscall"
)

// ShutdownSignals lists the signals that stop the jiggler.
func ShutdownSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
	}
}
