package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/stigoleg/jiggler/internal/jiggler"
)

// statusLabel is the headline shown for a coordinator state.
func statusLabel(s jiggler.State) string {
	switch s {
	case jiggler.StateIdle:
		return "○ Inactive"
	case jiggler.StateMonitoring:
		return "● Watching for inactivity"
	case jiggler.StateJiggling:
		return "● Jiggling"
	default:
		return "? Unknown"
	}
}

func statusStyle(s jiggler.State) lipgloss.Style {
	switch s {
	case jiggler.StateMonitoring:
		return Current.ActiveStatus
	case jiggler.StateJiggling:
		return Current.JigglingStatus
	default:
		return Current.InactiveStatus
	}
}
