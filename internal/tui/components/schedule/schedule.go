package schedule

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/miaomotion/internal/models"
)

type AddScheduleMsg struct{}

type DeleteScheduleMsg struct {
	ID string
}

type Item struct {
	Schedule models.ScheduleItem
}

func (i Item) Title() string {
	return fmt.Sprintf("%s-%s  %s", i.Schedule.StartTime, i.Schedule.EndTime, i.Schedule.Task)
}

func (i Item) Description() string {
	if i.Schedule.EndTime < i.Schedule.StartTime {
		return "ends before it starts"
	}
	return i.Schedule.Date
}

func (i Item) FilterValue() string { return i.Schedule.Task }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// Model lists one day's schedule items.
type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []models.ScheduleItem, width, height int) Model {
	l := list.New(toItems(items), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}
	return Model{list: l, keys: keys}
}

func toItems(items []models.ScheduleItem) []list.Item {
	out := make([]list.Item, len(items))
	for i, s := range items {
		out[i] = Item{Schedule: s}
	}
	return out
}

func (m *Model) SetSchedules(items []models.ScheduleItem) {
	m.list.SetItems(toItems(items))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Len is the number of listed items.
func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddScheduleMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteScheduleMsg{ID: i.Schedule.ID} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "Nothing scheduled today. Press 'a' to add a busy block."
	}
	return m.list.View()
}
