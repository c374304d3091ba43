//go:build darwin

package notify

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/stigoleg/jiggler/internal/util"
)

type osascript struct{}

func system() Notifier {
	return osascript{}
}

func (osascript) Notify(title, body string) error {
	if err := util.RequireCommand("osascript"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if out, err := exec.CommandContext(ctx, "osascript", "-e", appleScript(title, body)).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	return nil
}
