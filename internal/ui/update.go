package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg refreshes the snapshot once a second.
type tickMsg time.Time

// toggledMsg carries the outcome of a start or stop.
type toggledMsg struct {
	err error
}

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKey(msg, m)

	case tea.WindowSizeMsg:
		m.Help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.refresh(time.Time(msg))
		return m, tick()

	case toggledMsg:
		if msg.err != nil {
			m.ErrorMessage = msg.err.Error()
		} else {
			m.ErrorMessage = ""
		}
		m.refresh(time.Now())
		return m, nil
	}

	return m, nil
}

func handleKey(msg tea.KeyMsg, m Model) (Model, tea.Cmd) {
	if m.ShowHelp {
		switch {
		case key.Matches(msg, m.Keys.ToggleHelp):
			m.ShowHelp = false
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	s := m.settings.Settings()
	m.Keys.ToggleSpace.SetEnabled(s.EnableKeyboardShortcut)

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.ToggleHelp):
		m.ShowHelp = true
	case key.Matches(msg, m.Keys.Toggle), key.Matches(msg, m.Keys.ToggleSpace):
		return m, m.toggle()
	}
	return m, nil
}

func (m Model) toggle() tea.Cmd {
	ctx, c := m.ctx, m.controller
	return func() tea.Msg {
		return toggledMsg{err: c.Toggle(ctx)}
	}
}

func (m *Model) refresh(now time.Time) {
	m.Now = now
	m.Snapshot = m.controller.Snapshot()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
