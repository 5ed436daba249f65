package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/miaomotion/internal/animation"
	apperrors "github.com/julianstephens/miaomotion/internal/errors"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/session"
	"github.com/julianstephens/miaomotion/internal/tui/components/schedule"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.schedules.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case phaseMsg:
		m.phase = animation.Phase(msg)
		return m, waitForPhase(m.phases)

	case feedDoneMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			cat := m.session.Data().Cat
			m.setStatus(fmt.Sprintf("%s ate happily. Weight is now %.2f kg", cat.Name, cat.Weight))
		}
		return m, nil

	case schedule.AddScheduleMsg:
		m.openSchedule()
		return m, m.form.Init()

	case schedule.DeleteScheduleMsg:
		if _, err := m.session.DeleteSchedule(msg.ID); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Busy block removed")
		}
		m.refreshSchedules()
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateScreen(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.cycleScreen(1)
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.cycleScreen(-1)
		return m, nil
	}

	switch m.session.Screen() {
	case session.ScreenHome:
		switch {
		case key.Matches(keyMsg, m.keys.CheckIn):
			if m.session.Snapshot().CheckedInToday {
				m.setStatus("Already checked in today")
				return m, nil
			}
			m.openCheckIn()
			return m, m.form.Init()
		case key.Matches(keyMsg, m.keys.Feed):
			return m, m.feed()
		}

	case session.ScreenGrowth:
		switch {
		case key.Matches(keyMsg, m.keys.Feed):
			return m, m.feed()
		case key.Matches(keyMsg, m.keys.Rename):
			m.openRename()
			return m, m.form.Init()
		}

	case session.ScreenCalendar:
		switch {
		case key.Matches(keyMsg, m.keys.PrevMonth):
			m.shiftMonth(-1)
			return m, nil
		case key.Matches(keyMsg, m.keys.NextMonth):
			m.shiftMonth(1)
			return m, nil
		}

	case session.ScreenProfile:
		if key.Matches(keyMsg, m.keys.Reset) {
			m.openReset()
			return m, m.form.Init()
		}
	}

	return m.updateScreen(msg)
}

func (m Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.session.Screen() != session.ScreenSchedule {
		return m, nil
	}
	var cmd tea.Cmd
	m.schedules, cmd = m.schedules.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			if m.formKind != formWelcome {
				m.closeForm()
				return m, nil
			}
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		if m.formKind == formWelcome {
			m.quitting = true
			return m, tea.Quit
		}
		m.closeForm()
		return m, nil
	case huh.StateCompleted:
		return m.submitForm()
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	kind := m.formKind
	m.closeForm()

	switch kind {
	case formWelcome:
		in := m.welcome
		if err := m.session.Login(in.Phone, in.Code); err != nil {
			return m.retryWelcome(err)
		}
		if err := m.session.Adopt(in.Name, in.Breed); err != nil {
			return m.retryWelcome(err)
		}
		m.setStatus(fmt.Sprintf("Welcome home, %s!", m.session.Data().Cat.Name))

	case formCheckIn:
		res, err := m.session.SubmitCheckIn(models.SportType(m.sport))
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(session.RewardMessage(res))

	case formSchedule:
		item, err := m.session.AddSchedule(m.session.Today(), m.entry.Start, m.entry.End, m.entry.Task)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.refreshSchedules()
		m.setStatus(fmt.Sprintf("Added %s-%s %s", item.StartTime, item.EndTime, item.Task))

	case formRename:
		if err := m.session.RenameCat(m.newName); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Your cat is now called %s", m.session.Data().Cat.Name))

	case formReset:
		if !m.confirm {
			return m, nil
		}
		backupPath, err := m.session.Reset()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.refreshSchedules()
		m.phase = animation.Idle
		if backupPath != "" {
			m.setStatus("Data reset. Backup saved to " + backupPath)
		} else {
			m.setStatus("Data reset")
		}
		m.openWelcome()
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) retryWelcome(err error) (tea.Model, tea.Cmd) {
	m.setError(err)
	m.openWelcome()
	return m, m.form.Init()
}

// feed starts the feeding cycle and reports its outcome once the cat swallows.
func (m *Model) feed() tea.Cmd {
	feeding, err := m.session.Feed()
	if err != nil {
		m.setError(err)
		return nil
	}
	m.status, m.errMsg = "", ""
	return func() tea.Msg {
		return feedDoneMsg{err: feeding.Wait(context.Background())}
	}
}

func (m *Model) cycleScreen(dir int) {
	if m.session.FirstRun() {
		return
	}
	current := m.session.Screen()
	idx := 0
	for i, sc := range session.Screens {
		if sc == current {
			idx = i
			break
		}
	}
	n := len(session.Screens)
	next := session.Screens[(idx+dir+n)%n]
	if err := m.session.Navigate(next); err != nil {
		m.setError(err)
		return
	}
	if next == session.ScreenSchedule {
		m.refreshSchedules()
	}
}

func (m *Model) shiftMonth(delta int) {
	month := int(m.viewMonth) - 1 + delta
	year := m.viewYear + month/12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	m.viewYear = year
	m.viewMonth = time.Month(month + 1)
}

func (m *Model) refreshSchedules() {
	m.schedules.SetSchedules(m.session.Schedules(m.session.Today()))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.errMsg = ""
}

func (m *Model) setError(err error) {
	m.errMsg = apperrors.Format(err)
	m.status = ""
}
