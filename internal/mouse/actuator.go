package mouse

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrBusy is returned when a movement is already in flight. The call is a no-op.
	ErrBusy = errors.New("movement already in progress")

	// ErrUnavailable wraps failures of the cursor or screen queries.
	ErrUnavailable = errors.New("cursor control unavailable")
)

// Result describes a movement. When a movement fails after the cursor has
// left its start, To is the last point reached and CompletedAt is when the
// animation stopped. CompletedAt is zero if the cursor never moved.
type Result struct {
	From        Point
	To          Point
	StartedAt   time.Time
	CompletedAt time.Time
}

// Actuator performs animated cursor relocations. It is safe for concurrent
// use, and at most one movement is ever in flight.
type Actuator struct {
	backend  Backend
	steps    int
	duration time.Duration
	padding  float64
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *zap.Logger

	rndMu sync.Mutex
	rnd   *rand.Rand

	moving atomic.Bool
}

// Option configures an Actuator.
type Option func(*Actuator)

// WithSteps sets the number of animation steps.
func WithSteps(n int) Option {
	return func(a *Actuator) {
		if n > 0 {
			a.steps = n
		}
	}
}

// WithDuration sets the total animation time.
func WithDuration(d time.Duration) Option {
	return func(a *Actuator) {
		if d >= 0 {
			a.duration = d
		}
	}
}

// WithPadding sets the inset from every screen edge.
func WithPadding(px float64) Option {
	return func(a *Actuator) {
		if px >= 0 {
			a.padding = px
		}
	}
}

// WithRand sets the random source for target selection.
func WithRand(rnd *rand.Rand) Option {
	return func(a *Actuator) {
		if rnd != nil {
			a.rnd = rnd
		}
	}
}

// WithClock overrides the completion timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Actuator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithSleeper overrides how the actuator waits between steps.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(a *Actuator) {
		if sleep != nil {
			a.sleep = sleep
		}
	}
}

// NewActuator creates an actuator driving backend.
func NewActuator(backend Backend, logger *zap.Logger, opts ...Option) *Actuator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Actuator{
		backend:  backend,
		steps:    DefaultSteps,
		duration: DefaultDuration,
		padding:  DefaultPadding,
		now:      time.Now,
		sleep:    sleepContext,
		logger:   logger,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IsMoving reports whether a movement is in flight.
func (a *Actuator) IsMoving() bool {
	return a.moving.Load()
}

// Jiggle moves the cursor from its current position to a random padded
// target and returns once the animation has finished. If another movement is
// in flight it returns ErrBusy without touching the cursor.
func (a *Actuator) Jiggle(ctx context.Context) (Result, error) {
	if !a.moving.CompareAndSwap(false, true) {
		a.logger.Debug("already moving, skipping")
		return Result{}, ErrBusy
	}
	defer a.moving.Store(false)

	width, height, err := a.backend.ScreenSize()
	if err != nil {
		return Result{}, fmt.Errorf("%w: screen size: %w", ErrUnavailable, err)
	}

	start, err := a.backend.Location()
	if err != nil {
		return Result{}, fmt.Errorf("%w: cursor location: %w", ErrUnavailable, err)
	}

	target := a.target(width, height)
	res := Result{From: start, To: target, StartedAt: a.now()}

	a.logger.Debug("moving",
		zap.Float64("from_x", start.X), zap.Float64("from_y", start.Y),
		zap.Float64("to_x", target.X), zap.Float64("to_y", target.Y),
	)

	path := Path(start, target, a.steps)
	delay := StepDelay(a.duration, a.steps)
	for i, p := range path {
		if err := a.backend.MoveTo(p); err != nil {
			return a.stopped(res, path[:i]), fmt.Errorf("%w: move: %w", ErrUnavailable, err)
		}
		if i == len(path)-1 {
			break
		}
		if err := a.sleep(ctx, delay); err != nil {
			return a.stopped(res, path[:i+1]), err
		}
	}

	res.CompletedAt = a.now()
	a.logger.Debug("arrived", zap.Float64("x", target.X), zap.Float64("y", target.Y))
	return res, nil
}

// stopped reports an animation cut short after the steps in done.
func (a *Actuator) stopped(res Result, done []Point) Result {
	if len(done) == 0 {
		return Result{From: res.From, StartedAt: res.StartedAt}
	}
	res.To = done[len(done)-1]
	res.CompletedAt = a.now()
	a.logger.Debug("stopped early", zap.Float64("x", res.To.X), zap.Float64("y", res.To.Y))
	return res
}

func (a *Actuator) target(width, height float64) Point {
	a.rndMu.Lock()
	defer a.rndMu.Unlock()
	return RandomTarget(a.rnd, width, height, a.padding)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
