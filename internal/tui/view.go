package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studylit/internal/validation"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDay:
		content = docStyle.Render(m.dayModel.View())
	case StateWeeks:
		content = docStyle.Render(m.weekModel.View())
	case StateConflicts:
		content = docStyle.Render(m.conflicts.View())
	}

	parts := []string{m.viewTabs()}
	if m.validationWarning != "" {
		parts = append(parts, warningStyle.Render(m.validationWarning))
	}
	parts = append(parts, content, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderConflicts lists validation conflicts, then plans whose date has no
// schedule entry.
func renderConflicts(conflicts []validation.Conflict, unscheduled []string) string {
	var b strings.Builder
	if len(conflicts) == 0 {
		b.WriteString("No conflicts detected.\n")
	}
	for _, c := range conflicts {
		fmt.Fprintf(&b, "%s %s\n", conflictTypeStyle.Render(string(c.Type)), c.Description)
		if c.Date != "" {
			fmt.Fprintf(&b, "  date: %s\n", c.Date)
		}
		if c.TimeRange != "" {
			fmt.Fprintf(&b, "  time: %s\n", c.TimeRange)
		}
		if len(c.PlanIDs) > 0 {
			fmt.Fprintf(&b, "  plans: %s\n", strings.Join(c.PlanIDs, ", "))
		}
	}
	if len(unscheduled) > 0 {
		fmt.Fprintf(&b, "\n%s plans on dates without a schedule entry\n", conflictTypeStyle.Render("unscheduled"))
		fmt.Fprintf(&b, "  plans: %s\n", strings.Join(unscheduled, ", "))
	}
	return b.String()
}
