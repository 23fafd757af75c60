package day

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/scheduler"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111")).
			Bold(true)

	planStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	seqStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("180"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Day      *scheduler.DayResult
	catalog  models.ContentCatalog
	seqs     map[string]int
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Day == nil {
		return "No schedule entries. Import a snapshot with 'studylit import'."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)
	m.Render()
}

func (m *Model) SetDay(day scheduler.DayResult, catalog models.ContentCatalog, seqs map[string]int) {
	m.Day = &day
	m.catalog = catalog
	m.seqs = seqs
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Clear() {
	m.Day = nil
	m.viewport.SetContent("")
}

func (m *Model) Render() {
	if m.Day == nil {
		return
	}
	m.viewport.SetContent(Render(*m.Day, m.catalog, m.seqs))
}

// Render lays out one day: each slot followed by its placements and free
// ranges, then anything left unplaced. Plans carry their sequence from seqs.
func Render(day scheduler.DayResult, catalog models.ContentCatalog, seqs map[string]int) string {
	var b strings.Builder
	entry := day.Entry

	header := fmt.Sprintf("%s  %s", entry.Date, entry.DayType)
	if day.EstimationType != entry.DayType {
		header += fmt.Sprintf(" (estimated as %s)", day.EstimationType)
	}
	b.WriteString(headerStyle.Render(header) + "\n")
	if entry.Exclusion != nil && entry.Exclusion.Reason != "" {
		b.WriteString(statusStyle.Render(entry.Exclusion.Reason) + "\n")
	}
	b.WriteString("\n")

	plans := make(map[string]models.Plan, len(day.Plans))
	for _, p := range day.Plans {
		plans[p.ID] = p
	}

	for i, slot := range entry.TimeSlots {
		label := string(slot.Type)
		if slot.Label != "" {
			label += " " + slot.Label
		}
		fmt.Fprintf(&b, "%s %s\n", timeStyle.Render(slot.Start+" - "+slot.End), slotStyle.Render(label))
		for _, p := range day.Allocation.Placements[i] {
			var status []string
			if p.IsContinued {
				status = append(status, "continued")
			}
			if p.IsPartial {
				status = append(status, "partial")
			}
			fmt.Fprintf(&b, "  %s %s %s %s\n",
				timeStyle.Render(p.Start+" - "+p.End),
				planStyle.Render(title(plans[p.PlanID], catalog)),
				seqStyle.Render(sequence(seqs, p.PlanID)),
				statusStyle.Render(strings.Join(status, ", ")),
			)
		}
		for _, fr := range day.Allocation.FreeRanges {
			if fr.SlotIndex == i {
				fmt.Fprintf(&b, "  %s %s\n", timeStyle.Render(fr.Start+" - "+fr.End), statusStyle.Render("free"))
			}
		}
	}

	if len(entry.TimeSlots) == 0 {
		b.WriteString(statusStyle.Render("No time slots.") + "\n")
	}

	if len(day.Allocation.UnplacedCustom) > 0 {
		b.WriteString("\nNo travel or academy slot for:\n")
		for _, id := range day.Allocation.UnplacedCustom {
			fmt.Fprintf(&b, "  %s %s\n", title(plans[id], catalog), seqStyle.Render(sequence(seqs, id)))
		}
	}
	if len(day.Allocation.Overflow) > 0 {
		b.WriteString("\nDid not fit:\n")
		for _, o := range day.Allocation.Overflow {
			fmt.Fprintf(&b, "  %s %s %s\n",
				title(plans[o.PlanID], catalog),
				seqStyle.Render(sequence(seqs, o.PlanID)),
				statusStyle.Render(fmt.Sprintf("%d min", o.Minutes)),
			)
		}
	}
	return b.String()
}

func title(p models.Plan, catalog models.ContentCatalog) string {
	name := p.ContentID
	if item := catalog.Lookup(p.ContentID); item != nil && item.Title != "" {
		name = item.Title
	}
	if p.Chapter != "" {
		name += " " + p.Chapter
	}
	return name
}

func sequence(seqs map[string]int, planID string) string {
	if seq, ok := seqs[planID]; ok {
		return fmt.Sprintf("#%d", seq)
	}
	return ""
}
