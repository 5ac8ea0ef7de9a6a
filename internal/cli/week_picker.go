package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/diarist/internal/cli/formatter"
	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type weekItem struct {
	week domain.WeekBucket
}

func (i weekItem) Title() string { return i.week.Label() }

func (i weekItem) Description() string {
	tasks := i.week.UniqueTasks()
	if len(tasks) == 0 {
		return "no tasks"
	}
	return fmt.Sprintf("%d task(s): %s", len(tasks), strings.Join(tasks, ", "))
}

func (i weekItem) FilterValue() string { return i.week.Label() }

// weekPicker is a bubbletea model listing weeks; enter chooses, esc or
// ctrl+c aborts.
type weekPicker struct {
	list    list.Model
	chosen  *domain.WeekBucket
	aborted bool
}

func newWeekPicker(weeks []domain.WeekBucket) weekPicker {
	items := make([]list.Item, len(weeks))
	initial := 0
	today := domain.Today()
	for i, w := range weeks {
		items[i] = weekItem{week: w}
		if w.Contains(today) {
			initial = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(formatter.ColorHeader).BorderForeground(formatter.ColorHeader)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(formatter.ColorFg).BorderForeground(formatter.ColorHeader)

	l := list.New(items, delegate, 72, 20)
	l.Title = "Select a week"
	l.Styles.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Select(initial)

	return weekPicker{list: l}
}

func (m weekPicker) Init() tea.Cmd { return nil }

func (m weekPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			// Index is relative to the filtered view, so go through the item.
			if item, ok := m.list.SelectedItem().(weekItem); ok {
				m.chosen = &item.week
			}
			return m, tea.Quit
		case "esc", "ctrl+c", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m weekPicker) View() string {
	return m.list.View()
}

func (m weekPicker) selected() (domain.WeekBucket, error) {
	if m.aborted || m.chosen == nil {
		return domain.WeekBucket{}, ErrAborted
	}
	return *m.chosen, nil
}

func runWeekPicker(weeks []domain.WeekBucket, opts ...tea.ProgramOption) (domain.WeekBucket, error) {
	final, err := tea.NewProgram(newWeekPicker(weeks), opts...).Run()
	if err != nil {
		return domain.WeekBucket{}, fmt.Errorf("week picker: %w", err)
	}
	return final.(weekPicker).selected()
}
