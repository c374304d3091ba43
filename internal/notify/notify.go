// Package notify shows desktop notifications. Delivery is best effort:
// callers log failures and carry on.
package notify

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AppName is the application name shown by notification daemons.
const AppName = "Jiggler"

const sendTimeout = 2 * time.Second

// Notifier shows a notification with a title and body.
type Notifier interface {
	Notify(title, body string) error
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(string, string) error { return nil }

// Logged wraps a Notifier and records every notification at debug level.
type Logged struct {
	Notifier Notifier
	Logger   *zap.Logger
}

func (l Logged) Notify(title, body string) error {
	err := l.Notifier.Notify(title, body)
	l.Logger.Debug("notification", zap.String("title", title), zap.Error(err))
	if err != nil {
		return fmt.Errorf("notify %q: %w", title, err)
	}
	return nil
}

// New returns the notifier for this platform. Whether to notify at all is
// decided by the caller, so settings can change at runtime.
func New(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Logged{Notifier: system(), Logger: logger}
}

// appleScript builds a "display notification" statement with both strings quoted.
func appleScript(title, body string) string {
	return fmt.Sprintf("display notification %s with title %s", quoteAppleScript(body), quoteAppleScript(title))
}

func quoteAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
