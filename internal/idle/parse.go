package idle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var hidIdleTimeRe = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

// parseHIDIdleTime extracts HIDIdleTime (nanoseconds) from `ioreg -c IOHIDSystem` output.
func parseHIDIdleTime(out []byte) (time.Duration, error) {
	matches := hidIdleTimeRe.FindSubmatch(out)
	if len(matches) < 2 {
		return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
	}

	nanos, err := strconv.ParseInt(string(matches[1]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse HIDIdleTime: %w", err)
	}
	return time.Duration(nanos), nil
}

// parseMillis parses the single integer xprintidle prints.
func parseMillis(out string) (time.Duration, error) {
	out = strings.TrimSpace(out)
	millis, err := strconv.ParseInt(out, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse xprintidle output %q: %w", out, err)
	}
	return time.Duration(millis) * time.Millisecond, nil
}
