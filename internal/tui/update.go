package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % stateCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + stateCount) % stateCount
			return m, nil
		}

		if m.state == StateDay {
			switch {
			case key.Matches(msg, m.keys.PrevDay):
				m.moveDay(-1)
				return m, nil
			case key.Matches(msg, m.keys.NextDay):
				m.moveDay(1)
				return m, nil
			case key.Matches(msg, m.keys.Today):
				m.dayIndex = m.todayIndex
				m.showDay()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateDay:
		m.dayModel, cmd = m.dayModel.Update(msg)
	case StateWeeks:
		m.weekModel, cmd = m.weekModel.Update(msg)
	case StateConflicts:
		m.conflicts, cmd = m.conflicts.Update(msg)
	}
	return m, cmd
}
