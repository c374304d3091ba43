//go:build linux

package idle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/stigoleg/jiggler/internal/util"
)

const queryTimeout = 2 * time.Second

const (
	mutterBusName = "org.gnome.Mutter.IdleMonitor"
	mutterPath    = dbus.ObjectPath("/org/gnome/Mutter/IdleMonitor/Core")
	mutterMethod  = mutterBusName + ".GetIdletime"
)

// System returns the Linux querier. X11 sessions use xprintidle; Wayland
// sessions ask the GNOME Mutter idle monitor over the session bus.
func System() Querier {
	if isWayland() {
		return mutterQuerier{}
	}
	return fallback{primary: xprintidleQuerier{}, secondary: mutterQuerier{}}
}

type xprintidleQuerier struct{}

func (xprintidleQuerier) IdleTime() (time.Duration, error) {
	if err := util.RequireCommand("xprintidle"); err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "xprintidle").Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseMillis(string(out))
}

type mutterQuerier struct{}

func (mutterQuerier) IdleTime() (time.Duration, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return 0, fmt.Errorf("connect session bus: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var ms uint64
	if err := conn.Object(mutterBusName, mutterPath).CallWithContext(ctx, mutterMethod, 0).Store(&ms); err != nil {
		return 0, fmt.Errorf("%s: %w", mutterMethod, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// fallback asks secondary only when primary fails.
type fallback struct {
	primary   Querier
	secondary Querier
}

func (f fallback) IdleTime() (time.Duration, error) {
	d, err := f.primary.IdleTime()
	if err == nil {
		return d, nil
	}
	d, err2 := f.secondary.IdleTime()
	if err2 != nil {
		return 0, errors.Join(err, err2)
	}
	return d, nil
}

func isWayland() bool {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return true
	}
	return strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland")
}
