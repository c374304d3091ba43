package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/jiggler"
)

// Controller is the part of the coordinator the UI drives.
type Controller interface {
	Toggle(ctx context.Context) error
	IsActive() bool
	Snapshot() jiggler.Snapshot
}

// Model holds the current state of the UI.
type Model struct {
	ctx        context.Context
	controller Controller
	settings   config.Provider

	Keys         KeyMap
	Help         help.Model
	Snapshot     jiggler.Snapshot
	Now          time.Time
	ErrorMessage string
	ShowHelp     bool
	Version      string
}

// InitialModel returns the model for the status screen.
func InitialModel(ctx context.Context, c Controller, settings config.Provider) Model {
	s := settings.Settings()
	return Model{
		ctx:        ctx,
		controller: c,
		settings:   settings,
		Keys:       DefaultKeys(s.EnableKeyboardShortcut),
		Help:       NewHelpModel(),
		Snapshot:   c.Snapshot(),
		Now:        time.Now(),
	}
}

// SetVersion sets the version shown in the help screen.
func (m *Model) SetVersion(v string) {
	m.Version = v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}
