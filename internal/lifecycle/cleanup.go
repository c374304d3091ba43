// Package lifecycle runs shutdown work once, in order, with a deadline.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds the whole cleanup run.
const DefaultTimeout = 5 * time.Second

// ErrTimeout is reported when cleanups do not finish within the timeout.
var ErrTimeout = errors.New("cleanup timeout exceeded")

// CleanupManager manages cleanup operations with timeout and error tracking
type CleanupManager struct {
	mu          sync.Mutex
	resources   []CleanupResource
	timeout     time.Duration
	logger      *zap.Logger
	cleanupOnce sync.Once
	errs        []error
}

// CleanupResource represents a resource that needs cleanup
type CleanupResource interface {
	Cleanup() error
	Name() string
}

// CleanupFunc is a function-based cleanup resource
type CleanupFunc struct {
	name string
	fn   func() error
}

func (c *CleanupFunc) Cleanup() error {
	return c.fn()
}

func (c *CleanupFunc) Name() string {
	return c.name
}

// NewCleanupManager creates a new cleanup manager with the specified timeout
func NewCleanupManager(timeout time.Duration, logger *zap.Logger) *CleanupManager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupManager{
		timeout: timeout,
		logger:  logger,
	}
}

// Register adds a resource to be cleaned up. Resources run in registration order.
func (cm *CleanupManager) Register(resource CleanupResource) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = append(cm.resources, resource)
}

// RegisterFunc registers a cleanup function
func (cm *CleanupManager) RegisterFunc(name string, fn func() error) {
	cm.Register(&CleanupFunc{name: name, fn: fn})
}

// Execute runs every registered cleanup once. Later calls return the errors
// from the first run.
func (cm *CleanupManager) Execute() []error {
	cm.cleanupOnce.Do(func() {
		cm.errs = cm.executeWithTimeout()
	})
	return cm.errs
}

func (cm *CleanupManager) executeWithTimeout() []error {
	cm.mu.Lock()
	resources := make([]CleanupResource, len(cm.resources))
	copy(resources, cm.resources)
	cm.mu.Unlock()

	if len(resources) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	done := make(chan struct{})
	var cleanupErrors []error
	var mu sync.Mutex
	record := func(err error) {
		mu.Lock()
		cleanupErrors = append(cleanupErrors, err)
		mu.Unlock()
	}

	go func() {
		defer close(done)
		for _, resource := range resources {
			cm.run(resource, record)
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		cm.logger.Warn("cleanup timed out, some resources may not have been cleaned up",
			zap.Duration("timeout", cm.timeout))
		record(ErrTimeout)
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]error(nil), cleanupErrors...)
}

func (cm *CleanupManager) run(resource CleanupResource, record func(error)) {
	name := resource.Name()
	defer func() {
		if r := recover(); r != nil {
			cm.logger.Error("panic during cleanup", zap.String("resource", name), zap.Any("panic", r))
			record(fmt.Errorf("cleanup %s: panic: %v", name, r))
		}
	}()

	if err := resource.Cleanup(); err != nil {
		cm.logger.Warn("cleanup failed", zap.String("resource", name), zap.Error(err))
		record(fmt.Errorf("cleanup %s: %w", name, err))
		return
	}
	cm.logger.Debug("cleaned up", zap.String("resource", name))
}
