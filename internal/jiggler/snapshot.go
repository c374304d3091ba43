package jiggler

import (
	"time"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/util"
)

// Snapshot is an immutable view of the coordinator for presentation.
type Snapshot struct {
	Active     bool
	State      State
	Policy     config.Policy
	Idle       time.Duration
	Still      time.Duration
	UserMoving bool
	LastMove   time.Time
	Moves      int
}

// IdleClock formats the last idle reading as MM:SS.
func (s Snapshot) IdleClock() string {
	return util.FormatClock(s.Idle)
}

// LastMoveAgo formats the last successful movement relative to now.
func (s Snapshot) LastMoveAgo(now time.Time) string {
	return util.FormatSince(s.LastMove, now)
}
