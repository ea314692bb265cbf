package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = max(msg.Width-6, 20)
		m.viewport.Height = max(msg.Height-8, 5)
		return m, nil

	case detailsMsg:
		if msg.unitsFailed {
			m.unitsDisabled = true
		}
		if g, ok := m.selected(); !ok || g.cmdline != msg.cmdline {
			return m, nil
		}
		m.details = msg.content
		m.viewport.SetContent(msg.content)
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if m.showDetails {
			switch {
			case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Details), msg.String() == "q":
				m.showDetails = false
				m.details = ""
				return m, nil
			}
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if m.textInput.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.textInput.Blur()
				return m, nil
			}
			m.textInput, cmd = m.textInput.Update(msg)
			m.filtered = m.filterGroups(m.textInput.Value())
			m.clampCursor()
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Filter):
			cmd = m.textInput.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Escape):
			if m.textInput.Value() != "" {
				m.textInput.SetValue("")
				m.filtered = m.filterGroups("")
				m.clampCursor()
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Details):
			if g, ok := m.selected(); ok {
				m.showDetails = true
				m.details = ""
				return m, loadDetails(g, m.opts, m.unitsDisabled)
			}
		}
	}

	return m, nil
}

func (m *model) clampCursor() {
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
