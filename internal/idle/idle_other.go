//go:build !darwin && !linux && !windows

package idle

import "time"

type unsupportedQuerier struct{}

// System returns a querier that always fails; the Source reports zero idle time.
func System() Querier {
	return unsupportedQuerier{}
}

func (unsupportedQuerier) IdleTime() (time.Duration, error) {
	return 0, ErrUnsupported
}
