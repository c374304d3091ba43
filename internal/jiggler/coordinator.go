// Package jiggler decides when the cursor should be nudged. A single loop
// goroutine owns the state machine and feeds it idle samples and cursor
// positions; movements run on their own goroutine and report back to it.
package jiggler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/idle"
	"github.com/stigoleg/jiggler/internal/mouse"
)

// ErrAlreadyRunning is returned by Start when the coordinator is active.
var ErrAlreadyRunning = errors.New("jiggler already running")

// IdleFeed publishes idle samples until its context is canceled.
type IdleFeed interface {
	Samples(ctx context.Context) <-chan idle.Sample
}

// Mover performs one cursor movement.
type Mover interface {
	Jiggle(ctx context.Context) (mouse.Result, error)
}

// Locator reads the current cursor position.
type Locator interface {
	Location() (mouse.Point, error)
}

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(title, body string) error
}

type completion struct {
	result mouse.Result
	err    error
}

// Coordinator runs the Idle / Monitoring / Jiggling state machine.
type Coordinator struct {
	feed     IdleFeed
	mover    Mover
	locator  Locator
	settings config.Provider
	notifier Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	snapMu sync.RWMutex
	snap   Snapshot
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNotifier sets where start and stop notifications go.
func WithNotifier(n Notifier) Option {
	return func(c *Coordinator) {
		c.notifier = n
	}
}

// New creates an inactive coordinator. locator may be nil, in which case the
// cursor tracker only ever sees stillness.
func New(feed IdleFeed, mover Mover, locator Locator, settings config.Provider, opts ...Option) *Coordinator {
	c := &Coordinator{
		feed:     feed,
		mover:    mover,
		locator:  locator,
		settings: settings,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.snap.Policy = settings.Settings().Policy
	return c
}

// IsActive reports whether the coordinator is Monitoring or Jiggling.
func (c *Coordinator) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Start moves the coordinator from Idle to Monitoring and begins evaluating
// ticks. The loop ends when Stop is called or ctx is canceled.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}

	s := c.settings.Settings()
	m := Machine{
		State:   StateMonitoring,
		Tracker: NewTracker(c.position()),
	}
	m.LastMove = c.Snapshot().LastMove

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.running = true
	c.cancel = cancel
	c.done = done

	c.publish(func(snap *Snapshot) {
		snap.Active = true
		snap.State = m.State
		snap.Policy = s.Policy
		snap.Still = 0
		snap.UserMoving = false
	})

	go c.run(loopCtx, m, done)
	c.mu.Unlock()

	c.logger.Info("started",
		zap.Duration("idle_threshold", s.IdleThreshold.Duration),
		zap.Duration("move_interval", s.MoveInterval.Duration),
		zap.String("policy", string(s.Policy)))
	c.notify(s, "Jiggler started", fmt.Sprintf("Moving the cursor after %s of inactivity", s.IdleThreshold.Duration))
	return nil
}

// Stop returns the coordinator to Idle and waits for the loop to exit. A
// movement already in flight is allowed to finish. Stopping while idle is a
// no-op.
func (c *Coordinator) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	cancel, done := c.cancel, c.done
	c.running = false
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	cancel()
	<-done

	c.logger.Info("stopped")
	c.notify(c.settings.Settings(), "Jiggler stopped", "The cursor will stay put")
	return nil
}

// Toggle starts an idle coordinator or stops an active one.
func (c *Coordinator) Toggle(ctx context.Context) error {
	if c.IsActive() {
		return c.Stop()
	}
	return c.Start(ctx)
}

func (c *Coordinator) run(ctx context.Context, m Machine, done chan struct{}) {
	defer func() {
		c.mu.Lock()
		if c.done == done {
			c.running = false
			c.cancel = nil
			c.done = nil
		}
		c.mu.Unlock()
		c.publish(func(snap *Snapshot) {
			snap.Active = false
			snap.State = StateIdle
		})
		close(done)
	}()

	samples := c.feed.Samples(ctx)
	completions := make(chan completion, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case sample, ok := <-samples:
			if !ok {
				return
			}
			m = c.tick(ctx, m, sample, completions)
		case res := <-completions:
			m = c.complete(m, res)
		}
	}
}

func (c *Coordinator) tick(ctx context.Context, m Machine, sample idle.Sample, completions chan<- completion) Machine {
	s := c.settings.Settings()
	p := ParamsFrom(s)

	in := Input{Now: sample.At, Idle: sample.Idle}
	if p.dualSignal() {
		in.Position = c.position()
	}

	prev := m.State
	m, eff := Evaluate(m, in, p)
	if m.State != prev {
		c.logger.Debug("state changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", m.State),
			zap.Duration("idle", sample.Idle),
			zap.Duration("still", m.Tracker.Still))
	}
	if m.Tracker.UserMoving {
		c.logger.Debug("user movement detected", zap.Stringer("state", m.State))
	}

	if eff.Jiggle {
		c.launch(ctx, completions)
	}

	c.publish(func(snap *Snapshot) {
		snap.State = m.State
		snap.Idle = sample.Idle
		snap.Still = m.Tracker.Still
		snap.UserMoving = m.Tracker.UserMoving
		snap.Policy = s.Policy
	})
	return m
}

// launch runs one movement on its own goroutine. The movement itself ignores
// cancellation so that Stop never leaves the cursor halfway along its path.
func (c *Coordinator) launch(ctx context.Context, completions chan<- completion) {
	moveCtx := context.WithoutCancel(ctx)
	go func() {
		res, err := c.mover.Jiggle(moveCtx)
		select {
		case completions <- completion{result: res, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (c *Coordinator) complete(m Machine, res completion) Machine {
	switch {
	case res.err == nil:
		c.logger.Debug("moved",
			zap.Float64("x", res.result.To.X),
			zap.Float64("y", res.result.To.Y),
			zap.Duration("took", res.result.CompletedAt.Sub(res.result.StartedAt)))
	case errors.Is(res.err, mouse.ErrBusy):
		c.logger.Debug("movement skipped, another is in flight")
	default:
		c.logger.Warn("movement failed", zap.Error(res.err))
	}

	m = m.Complete(res.result, res.err == nil)
	if res.err == nil {
		c.publish(func(snap *Snapshot) {
			snap.LastMove = m.LastMove
			snap.Moves++
		})
	}
	return m
}

func (c *Coordinator) position() *mouse.Point {
	if c.locator == nil {
		return nil
	}
	pos, err := c.locator.Location()
	if err != nil {
		c.logger.Debug("cursor position unavailable", zap.Error(err))
		return nil
	}
	return &pos
}

func (c *Coordinator) notify(s config.Settings, title, body string) {
	if c.notifier == nil || !s.ShowNotifications {
		return
	}
	if err := c.notifier.Notify(title, body); err != nil {
		c.logger.Warn("notification failed", zap.Error(err))
	}
}

// Snapshot returns the latest published view of the coordinator.
func (c *Coordinator) Snapshot() Snapshot {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.snap
}

func (c *Coordinator) publish(update func(*Snapshot)) {
	c.snapMu.Lock()
	defer c.snapMu.Unlock()
	update(&c.snap)
}
