package jiggler

import (
	"time"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/mouse"
)

const (
	// DefaultTickPeriod is how often the machine is evaluated.
	DefaultTickPeriod = time.Second

	// DefaultActiveFloor is the idle reading below which the user counts as back.
	DefaultActiveFloor = 2 * time.Second

	// DefaultGrace is how long after one of our moves cursor deltas are ignored.
	DefaultGrace = 1500 * time.Millisecond
)

// Params are the inputs to Evaluate that come from settings or fixed constants.
type Params struct {
	IdleThreshold     time.Duration
	MoveInterval      time.Duration
	PositionThreshold float64
	Policy            config.Policy
	ActiveFloor       time.Duration
	Grace             time.Duration
	TickPeriod        time.Duration
}

// ParamsFrom builds Params from the current settings.
func ParamsFrom(s config.Settings) Params {
	return Params{
		IdleThreshold:     s.IdleThreshold.Duration,
		MoveInterval:      s.MoveInterval.Duration,
		PositionThreshold: s.PositionThreshold,
		Policy:            s.Policy,
		ActiveFloor:       DefaultActiveFloor,
		Grace:             DefaultGrace,
		TickPeriod:        DefaultTickPeriod,
	}
}

func (p Params) dualSignal() bool {
	return p.Policy != config.PolicyIdleOnly
}

// Input is one tick's worth of observations.
type Input struct {
	Now  time.Time
	Idle time.Duration
	// Position is nil when the cursor was not sampled this tick.
	Position *mouse.Point
}

// Machine is the coordinator state that Evaluate transforms.
type Machine struct {
	State       State
	Tracker     Tracker
	LastTrigger time.Time
	LastMove    time.Time
	Moving      bool
}

// Effect is what the caller must do after a tick.
type Effect struct {
	Jiggle bool
}

// Evaluate runs one tick of the state machine. It is pure: all time and
// observations come from in, and side effects are returned as an Effect.
func Evaluate(m Machine, in Input, p Params) (Machine, Effect) {
	var eff Effect

	if !m.State.Active() {
		return m, eff
	}

	if p.dualSignal() {
		m.Tracker = m.Tracker.Observe(in.Position, in.Now, m.Moving, p)
	}

	switch m.State {
	case StateMonitoring:
		if !idleEnough(m, in, p) {
			break
		}
		m.State = StateJiggling
		if !m.Moving {
			m, eff = trigger(m, in.Now)
		}

	case StateJiggling:
		if p.dualSignal() && m.Tracker.UserMoving {
			m.State = StateMonitoring
			break
		}
		if in.Idle < p.ActiveFloor && !ownIdleReset(m, in, p) {
			m.State = StateMonitoring
			m.Tracker.Still = in.Idle
			break
		}
		if !m.Moving && in.Now.Sub(m.LastTrigger) >= p.MoveInterval {
			m, eff = trigger(m, in.Now)
		}
	}

	return m, eff
}

// Complete folds the outcome of a triggered movement back into the machine.
// Only successful moves count as a last move. A failed move that still
// displaced the cursor resyncs the tracker to where it stopped.
func (m Machine) Complete(res mouse.Result, ok bool) Machine {
	m.Moving = false
	if !ok {
		if !res.CompletedAt.IsZero() {
			m.Tracker = m.Tracker.Synthetic(res.To, res.CompletedAt)
		}
		return m
	}
	m.Tracker = m.Tracker.Synthetic(res.To, res.CompletedAt)
	m.LastMove = res.CompletedAt
	return m
}

func idleEnough(m Machine, in Input, p Params) bool {
	if in.Idle < p.IdleThreshold {
		return false
	}
	if !p.dualSignal() {
		return true
	}
	return m.Tracker.Still >= p.IdleThreshold && !m.Tracker.UserMoving
}

// ownIdleReset reports whether an idle reading below the floor is explained
// by our own movement under dual-signal. Posted cursor events can reset the
// OS counter, so a reset during a move or no later than the grace window
// after the last one is not the user.
func ownIdleReset(m Machine, in Input, p Params) bool {
	if !p.dualSignal() {
		return false
	}
	if m.Moving {
		return true
	}
	last := m.Tracker.LastSyntheticMove
	if last.IsZero() {
		return false
	}
	resetAt := in.Now.Add(-in.Idle)
	return !resetAt.After(last.Add(p.Grace))
}

func trigger(m Machine, now time.Time) (Machine, Effect) {
	m.LastTrigger = now
	m.Moving = true
	return m, Effect{Jiggle: true}
}
