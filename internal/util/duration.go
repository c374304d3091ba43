package util

import (
	"fmt"
	"strconv"
	"time"
)

// ParseDuration parses a duration flag value. A bare integer is interpreted in
// the given unit, anything else must be a Go duration string such as "1m30s".
func ParseDuration(input string, unit time.Duration) (time.Duration, error) {
	if n, err := strconv.Atoi(input); err == nil {
		return time.Duration(n) * unit, nil
	}

	duration, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s\n\nValid formats:\n"+
			"• whole number in %s (e.g., '30')\n"+
			"• duration string (e.g., '45s', '2m', '1m30s')", input, unitName(unit))
	}
	return duration, nil
}

func unitName(unit time.Duration) string {
	switch unit {
	case time.Second:
		return "seconds"
	case time.Minute:
		return "minutes"
	case time.Hour:
		return "hours"
	default:
		return unit.String()
	}
}
