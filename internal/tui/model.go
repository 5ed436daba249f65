package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/miaomotion/internal/animation"
	"github.com/julianstephens/miaomotion/internal/session"
	"github.com/julianstephens/miaomotion/internal/tui/components/schedule"
	"github.com/julianstephens/miaomotion/internal/utils"
)

type formKind int

const (
	formNone formKind = iota
	formWelcome
	formCheckIn
	formSchedule
	formRename
	formReset
)

type welcomeInput struct {
	Phone string
	Code  string
	Name  string
	Breed string
}

type scheduleInput struct {
	Start string
	End   string
	Task  string
}

// phaseMsg carries an animation phase change from the timer goroutines.
type phaseMsg animation.Phase

type feedDoneMsg struct {
	err error
}

type Model struct {
	session *session.Session
	keys    KeyMap
	help    help.Model

	schedules schedule.Model

	viewYear  int
	viewMonth time.Month

	form     *huh.Form
	formKind formKind
	welcome  *welcomeInput
	sport    string
	entry    *scheduleInput
	newName  string
	confirm  bool

	phase  animation.Phase
	phases chan animation.Phase

	status string
	errMsg string

	width    int
	height   int
	quitting bool
}

// NewModel builds the interactive front-end over an already loaded session.
func NewModel(s *session.Session) Model {
	phases := make(chan animation.Phase, 16)
	s.Animation().OnPhase(func(p animation.Phase) {
		select {
		case phases <- p:
		default:
		}
	})

	today, _ := utils.ParseDate(s.Today())
	m := Model{
		session:   s,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		schedules: schedule.New(s.Schedules(s.Today()), 0, 0),
		viewYear:  today.Year(),
		viewMonth: today.Month(),
		phase:     s.Animation().Phase(),
		phases:    phases,
	}
	if s.FirstRun() {
		m.openWelcome()
	}
	return m
}

func waitForPhase(ch <-chan animation.Phase) tea.Cmd {
	return func() tea.Msg {
		return phaseMsg(<-ch)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForPhase(m.phases)}
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) ShortHelp() []key.Binding {
	switch m.session.Screen() {
	case session.ScreenHome:
		return []key.Binding{m.keys.CheckIn, m.keys.Feed, m.keys.Tab, m.keys.Quit}
	case session.ScreenCalendar:
		return []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Tab, m.keys.Quit}
	case session.ScreenGrowth:
		return []key.Binding{m.keys.Feed, m.keys.Rename, m.keys.Tab, m.keys.Quit}
	case session.ScreenProfile:
		return []key.Binding{m.keys.Reset, m.keys.Tab, m.keys.Quit}
	}
	return []key.Binding{m.keys.Tab, m.keys.Help, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Help, m.keys.Quit},
		{m.keys.CheckIn, m.keys.Feed, m.keys.Rename},
		{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Reset},
	}
}
