package week

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studylit/internal/weekly"
)

type Item struct {
	Week weekly.Week
}

func (i Item) Title() string {
	return fmt.Sprintf("Week %d  %s to %s", i.Week.Number, i.Week.StartDate, i.Week.EndDate)
}

func (i Item) Description() string {
	w := i.Week
	return fmt.Sprintf("study %.1fh | self-study %.1fh | travel %.1fh | academy %.1fh | %.1fh/day | %dS %dR %dX",
		w.StudyHours, w.SelfStudyHours, w.TravelHours, w.AcademyHours, w.AverageHoursPerDay,
		w.StudyDays, w.ReviewDays, w.ExclusionDays)
}

func (i Item) FilterValue() string { return fmt.Sprintf("week %d", i.Week.Number) }

type Model struct {
	list list.Model
}

func New(weeks []weekly.Week, width, height int) Model {
	l := list.New(items(weeks), list.NewDefaultDelegate(), width, height)
	l.Title = "Weeks"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model
	return Model{list: l}
}

func items(weeks []weekly.Week) []list.Item {
	out := make([]list.Item, len(weeks))
	for i, w := range weeks {
		out[i] = Item{Week: w}
	}
	return out
}

// Selected returns the highlighted week.
func (m Model) Selected() (weekly.Week, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Week, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No weeks scheduled.\n  Schedule entries need a week number to be grouped."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(max(width, 0), max(height, 0))
}
