package jiggler

import (
	"time"

	"github.com/stigoleg/jiggler/internal/mouse"
)

// Tracker follows local cursor stillness independently of the OS idle counter.
type Tracker struct {
	Position          mouse.Point
	Known             bool
	Still             time.Duration
	UserMoving        bool
	LastSyntheticMove time.Time
}

// NewTracker starts tracking from pos, which may be nil when the cursor
// could not be read.
func NewTracker(pos *mouse.Point) Tracker {
	var t Tracker
	if pos != nil {
		t.Position = *pos
		t.Known = true
	}
	return t
}

// Observe folds one position sample into the tracker. Movement seen while one
// of our own moves is in flight, or within the grace window after it, only
// resynchronizes the position. A missing sample counts as stillness.
func (t Tracker) Observe(pos *mouse.Point, now time.Time, inFlight bool, p Params) Tracker {
	if pos == nil {
		t.UserMoving = false
		t.Still += p.TickPeriod
		return t
	}

	if !t.Known {
		t.Position = *pos
		t.Known = true
		t.Still += p.TickPeriod
		return t
	}

	if inFlight || t.inGrace(now, p.Grace) {
		t.Position = *pos
		t.Still += p.TickPeriod
		return t
	}

	delta := t.Position.Distance(*pos)
	t.Position = *pos
	if delta > p.PositionThreshold {
		t.UserMoving = true
		t.Still = 0
		return t
	}

	t.UserMoving = false
	t.Still += p.TickPeriod
	return t
}

// Synthetic records that one of our own moves finished at at, leaving the cursor on pos.
func (t Tracker) Synthetic(pos mouse.Point, at time.Time) Tracker {
	t.Position = pos
	t.Known = true
	t.LastSyntheticMove = at
	return t
}

func (t Tracker) inGrace(now time.Time, grace time.Duration) bool {
	if t.LastSyntheticMove.IsZero() {
		return false
	}
	return now.Sub(t.LastSyntheticMove) <= grace
}
