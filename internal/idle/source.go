// Package idle samples how long it has been since the last physical keyboard
// or pointer input and publishes the readings as a feed.
package idle

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is the sampling cadence.
const DefaultInterval = time.Second

// failureLogEvery rate-limits the warning logged while the OS query keeps failing.
const failureLogEvery = time.Minute

// ErrUnsupported is returned by the system querier on platforms without a backend.
var ErrUnsupported = errors.New("idle time not supported on this platform")

// Sample is a single idle-time reading.
type Sample struct {
	Idle time.Duration
	At   time.Time
}

// Querier reads the time since the last human input event.
type Querier interface {
	IdleTime() (time.Duration, error)
}

// QuerierFunc adapts a function to Querier.
type QuerierFunc func() (time.Duration, error)

func (f QuerierFunc) IdleTime() (time.Duration, error) {
	return f()
}

// Source turns a Querier into a feed of samples.
type Source struct {
	querier  Querier
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger

	lastWarnNS int64
}

// Option configures a Source.
type Option func(*Source)

// WithInterval overrides the sampling cadence.
func WithInterval(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSource creates a Source polling q.
func NewSource(q Querier, logger *zap.Logger, opts ...Option) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Source{
		querier:  q,
		interval: DefaultInterval,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Samples starts a new feed: one sample right away, then one per interval,
// until ctx is done, at which point the channel is closed. Each call starts an
// independent poller, so a stopped feed can be restarted by calling again.
func (s *Source) Samples(ctx context.Context) <-chan Sample {
	out := make(chan Sample)

	go func() {
		defer close(out)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case out <- s.Sample():
			case <-ctx.Done():
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Sample takes a single reading. Query failures degrade to zero idle time.
func (s *Source) Sample() Sample {
	at := s.now()

	idle, err := s.querier.IdleTime()
	if err != nil {
		s.warn(err)
		return Sample{At: at}
	}
	if idle < 0 {
		idle = 0
	}

	return Sample{Idle: idle, At: at}
}

func (s *Source) warn(err error) {
	nowNS := s.now().UnixNano()
	last := atomic.LoadInt64(&s.lastWarnNS)
	if last != 0 && time.Duration(nowNS-last) < failureLogEvery {
		s.logger.Debug("idle query failed", zap.Error(err))
		return
	}
	atomic.StoreInt64(&s.lastWarnNS, nowNS)
	s.logger.Warn("idle query failed, reporting zero idle time", zap.Error(err))
}
