//go:build darwin

package idle

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

const queryTimeout = 2 * time.Second

type ioregQuerier struct{}

// System returns the macOS querier, which reads HIDIdleTime from the IOHIDSystem registry entry.
func System() Querier {
	return ioregQuerier{}
}

func (ioregQuerier) IdleTime() (time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseHIDIdleTime(out)
}
