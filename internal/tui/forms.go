package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/utils"
	"github.com/julianstephens/miaomotion/internal/validation"
)

func (m *Model) openWelcome() {
	m.welcome = &welcomeInput{Breed: string(models.BreedOrange)}
	breeds := make([]huh.Option[string], len(models.Breeds))
	for i, b := range models.Breeds {
		breeds[i] = huh.NewOption(fmt.Sprintf("%s - %s", b.Label(), b.Description()), string(b))
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Phone number").
				Description("11 digits").
				Value(&m.welcome.Phone).
				Validate(func(s string) error {
					return validation.Struct(validation.LoginForm{Phone: s, Code: "0000"})
				}),
			huh.NewInput().
				Title("Verification code").
				CharLimit(4).
				Value(&m.welcome.Code),
		).Title("Log in"),
		huh.NewGroup(
			huh.NewInput().
				Title("Name your cat").
				Placeholder(constants.DefaultCatName).
				Value(&m.welcome.Name),
			huh.NewSelect[string]().
				Title("Choose a breed").
				Options(breeds...).
				Value(&m.welcome.Breed),
		).Title("Adopt a cat"),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
	m.formKind = formWelcome
}

func (m *Model) openCheckIn() {
	m.sport = string(models.SportWalk)
	options := make([]huh.Option[string], len(models.CheckInChoices))
	for i, s := range models.CheckInChoices {
		options[i] = huh.NewOption(string(s), string(s))
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What did you do today?").
				Options(options...).
				Value(&m.sport),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
	m.formKind = formCheckIn
}

func (m *Model) openSchedule() {
	m.entry = &scheduleInput{}
	timeField := func(title string, v *string) *huh.Input {
		return huh.NewInput().
			Title(title).
			Placeholder("HH:MM").
			CharLimit(5).
			Value(v).
			Validate(func(s string) error {
				if !utils.ValidateTimeFormat(s) {
					return fmt.Errorf("use HH:MM, e.g. 09:30")
				}
				return nil
			})
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			timeField("Start", &m.entry.Start),
			timeField("End", &m.entry.End),
			huh.NewInput().
				Title("Task").
				Value(&m.entry.Task),
		).Title("Add busy block"),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
	m.formKind = formSchedule
}

func (m *Model) openRename() {
	m.newName = m.session.Data().Cat.Name
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New name").
				Value(&m.newName),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
	m.formKind = formRename
}

func (m *Model) openReset() {
	m.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all data?").
				Description("Your cat, check-ins and schedules will be erased.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(&m.confirm),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
	m.formKind = formReset
}

func (m *Model) closeForm() {
	m.form = nil
	m.formKind = formNone
}
