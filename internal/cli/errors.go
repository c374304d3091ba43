package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stigoleg/jiggler/internal/config"
)

var errorTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"})

var errorHint = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})

// FormatError renders err for the terminal, with a hint for the errors a user
// can fix from the command line.
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString(errorTitle.Render("Error: " + err.Error()))

	if hint := hintFor(err); hint != "" {
		b.WriteString("\n")
		b.WriteString(errorHint.Render(hint))
	}
	return b.String()
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrInvalidThreshold):
		return "Use a positive duration for --idle, e.g. 30s or 2 (minutes)."
	case errors.Is(err, config.ErrInvalidInterval):
		return "Use a positive duration for --interval, e.g. 10s or 10 (seconds)."
	case errors.Is(err, config.ErrInvalidPixels):
		return "Use a non-negative pixel count for --threshold-px."
	case errors.Is(err, config.ErrInvalidPolicy):
		return "Valid policies: " + string(config.PolicyDualSignal) + ", " + string(config.PolicyIdleOnly) + "."
	default:
		return ""
	}
}
