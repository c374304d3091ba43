package util

import (
	"fmt"
	"time"
)

// FormatClock renders an elapsed duration as MM:SS. Minutes are not wrapped
// into hours, so an hour and a half reads "90:00".
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatSince renders the time elapsed between t and now in an abbreviated
// relative form ("5s ago", "3m ago"). The zero time renders as "Never".
func FormatSince(t, now time.Time) string {
	if t.IsZero() {
		return "Never"
	}

	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}
