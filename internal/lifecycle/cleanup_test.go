package lifecycle

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCleanupRunsInOrder(t *testing.T) {
	cm := NewCleanupManager(time.Second, zaptest.NewLogger(t))

	var order []string
	cm.RegisterFunc("coordinator", func() error { order = append(order, "coordinator"); return nil })
	cm.RegisterFunc("watcher", func() error { order = append(order, "watcher"); return nil })
	cm.RegisterFunc("logger", func() error { order = append(order, "logger"); return nil })

	assert.Empty(t, cm.Execute())
	assert.Equal(t, []string{"coordinator", "watcher", "logger"}, order)
}

func TestCleanupRunsOnce(t *testing.T) {
	cm := NewCleanupManager(time.Second, nil)

	var calls atomic.Int32
	cm.RegisterFunc("once", func() error { calls.Add(1); return nil })

	cm.Execute()
	cm.Execute()
	assert.Equal(t, int32(1), calls.Load())
}

func TestCleanupCollectsErrors(t *testing.T) {
	cm := NewCleanupManager(time.Second, zaptest.NewLogger(t))
	cause := errors.New("boom")

	ran := false
	cm.RegisterFunc("failing", func() error { return cause })
	cm.RegisterFunc("panicking", func() error { panic("bad") })
	cm.RegisterFunc("after", func() error { ran = true; return nil })

	errs := cm.Execute()
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], cause)
	assert.Contains(t, errs[0].Error(), "failing")
	assert.Contains(t, errs[1].Error(), "panic")
	assert.True(t, ran, "a failing cleanup does not stop the rest")

	assert.Equal(t, errs, cm.Execute(), "later calls return the first result")
}

func TestCleanupTimeout(t *testing.T) {
	cm := NewCleanupManager(50*time.Millisecond, zaptest.NewLogger(t))

	release := make(chan struct{})
	defer close(release)
	cm.RegisterFunc("stuck", func() error { <-release; return nil })

	start := time.Now()
	errs := cm.Execute()
	assert.Less(t, time.Since(start), time.Second)
	require.NotEmpty(t, errs)
	assert.ErrorIs(t, errs[len(errs)-1], ErrTimeout)
}

func TestCleanupDefaultTimeout(t *testing.T) {
	cm := NewCleanupManager(0, nil)
	assert.Equal(t, DefaultTimeout, cm.timeout)
	assert.Empty(t, cm.Execute())
}

func TestShutdownSignals(t *testing.T) {
	assert.NotEmpty(t, ShutdownSignals())
}
