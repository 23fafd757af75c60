package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/scheduler"
	"github.com/julianstephens/studylit/internal/tui/components/day"
	"github.com/julianstephens/studylit/internal/tui/components/week"
	"github.com/julianstephens/studylit/internal/validation"
)

type SessionState int

const (
	StateDay SessionState = iota
	StateWeeks
	StateConflicts
)

const stateCount = 3

var tabTitles = []string{"Day", "Weeks", "Conflicts"}

type Model struct {
	timetable         scheduler.Timetable
	catalog           models.ContentCatalog
	state             SessionState
	keys              KeyMap
	help              help.Model
	dayModel          day.Model
	weekModel         week.Model
	conflicts         viewport.Model
	conflictList      []validation.Conflict
	dayIndex          int
	todayIndex        int
	quitting          bool
	width             int
	height            int
	validationWarning string
}

// NewModel opens the browser on today, or on the closest scheduled date
// after it when today has no entry.
func NewModel(tt scheduler.Timetable, contents []models.ContentItem, conflicts []validation.Conflict, today string) Model {
	m := Model{
		timetable:    tt,
		catalog:      models.NewContentCatalog(contents),
		state:        StateDay,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		dayModel:     day.New(0, 0),
		weekModel:    week.New(tt.Weeks, 0, 0),
		conflicts:    viewport.New(0, 0),
		conflictList: conflicts,
	}

	m.todayIndex = sort.Search(len(tt.Days), func(i int) bool { return tt.Days[i].Entry.Date >= today })
	if m.todayIndex == len(tt.Days) && m.todayIndex > 0 {
		m.todayIndex--
	}
	m.dayIndex = m.todayIndex
	m.showDay()

	var warnings []string
	if len(conflicts) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d validation warning(s)", len(conflicts)))
	}
	if len(tt.Unscheduled) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d unscheduled plan(s)", len(tt.Unscheduled)))
	}
	if len(warnings) > 0 {
		m.validationWarning = "⚠ " + strings.Join(warnings, ", ")
	}
	m.conflicts.SetContent(renderConflicts(conflicts, tt.Unscheduled))
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateDay {
		keys = append(keys, m.keys.PrevDay, m.keys.NextDay, m.keys.Today)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateDay {
		actions = []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.Today}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// CurrentDate is the date shown on the day tab, empty without entries.
func (m Model) CurrentDate() string {
	if m.dayIndex < 0 || m.dayIndex >= len(m.timetable.Days) {
		return ""
	}
	return m.timetable.Days[m.dayIndex].Entry.Date
}

func (m *Model) showDay() {
	if m.dayIndex < 0 || m.dayIndex >= len(m.timetable.Days) {
		m.dayModel.Clear()
		return
	}
	m.dayModel.SetDay(m.timetable.Days[m.dayIndex], m.catalog, m.timetable.Sequences)
}

func (m *Model) moveDay(delta int) {
	next := m.dayIndex + delta
	if next < 0 || next >= len(m.timetable.Days) {
		return
	}
	m.dayIndex = next
	m.showDay()
}

func (m *Model) resize() {
	// tabs, warning line and help
	h := max(m.height-4, 0)
	m.dayModel.SetSize(m.width-4, h-2)
	m.weekModel.SetSize(m.width-4, h-2)
	m.conflicts.Width = m.width - 4
	m.conflicts.Height = max(h-2, 0)
}
