//go:build linux

package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	method     = busName + ".Notify"

	// expireMillis is how long the daemon should keep the notification up.
	expireMillis = int32(5000)
)

type freedesktop struct{}

func system() Notifier {
	return freedesktop{}
}

func (freedesktop) Notify(title, body string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	call := conn.Object(busName, objectPath).CallWithContext(ctx, method, 0, notifyArgs(title, body)...)
	if call.Err != nil {
		return fmt.Errorf("%s: %w", method, call.Err)
	}
	return nil
}

// notifyArgs follows the Notify signature: app_name, replaces_id, app_icon,
// summary, body, actions, hints, expire_timeout.
func notifyArgs(title, body string) []interface{} {
	return []interface{}{
		AppName,
		uint32(0),
		"",
		title,
		body,
		[]string{},
		map[string]dbus.Variant{},
		expireMillis,
	}
}
