package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stigoleg/jiggler/internal/config"
)

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.ShowHelp {
		return helpView(m)
	}
	return statusView(m)
}

func statusView(m Model) string {
	var b strings.Builder
	snap := m.Snapshot
	s := m.settings.Settings()

	b.WriteString(Current.Title.Render("Jiggler"))
	b.WriteString("\n\n")
	b.WriteString(statusStyle(snap.State).Render(statusLabel(snap.State)))
	b.WriteString("\n\n")

	rows := []string{
		row("State", snap.State.String()),
		row("Idle", snap.IdleClock()),
		row("Last move", snap.LastMoveAgo(m.Now)),
		row("Moves", fmt.Sprintf("%d", snap.Moves)),
		row("Settings", settingsSummary(s)),
	}
	b.WriteString(Current.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	b.WriteString("\n")

	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage) + "\n")
	}

	keys := m.Keys.ForState(snap.Active)
	b.WriteString("\n" + Current.Help.Render(m.Help.ShortHelpView(keys.ShortHelp())))
	return b.String()
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, Current.Label.Render(label), Current.Value.Render(value))
}

func settingsSummary(s config.Settings) string {
	return fmt.Sprintf("after %s, every %s, %s", s.IdleThreshold, s.MoveInterval, s.Policy)
}

func helpView(m Model) string {
	var b strings.Builder

	title := "Jiggler Help"
	if m.Version != "" {
		title += " " + m.Version
	}
	b.WriteString(Current.Title.Render(title))
	b.WriteString("\n\n")

	usage := `Moves the mouse cursor a short distance when the system has been idle
for the configured threshold, then again every interval until you are back.

Usage:
  jiggler [flags]
  jiggler config init|show
  jiggler version

Flags:
  -i, --idle string         Idle threshold before jiggling (e.g. "30s", or minutes)
  -n, --interval string     Time between moves while idle (e.g. "10s", or seconds)
      --threshold-px float  Cursor movement that counts as the user
      --policy string       dual-signal or idle-only
      --no-notify           Disable start/stop notifications
      --headless            Run without the terminal UI`

	b.WriteString(Current.Help.Render(usage))
	b.WriteString("\n\n")

	keys := m.Keys.ForState(m.Snapshot.Active)
	b.WriteString(Current.Help.Render(m.Help.FullHelpView(keys.FullHelp())))
	b.WriteString("\n\n" + Current.Help.Render("Press h or ? to close help"))
	return b.String()
}
