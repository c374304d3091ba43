package lifecycle

import (
	"context"
	"os/signal"
)

// NotifyContext returns a context that is canceled on the first shutdown
// signal for this platform.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, ShutdownSignals()...)
}
