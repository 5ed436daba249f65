package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/miaomotion/internal/animation"
	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/engine"
	"github.com/julianstephens/miaomotion/internal/session"
	"github.com/julianstephens/miaomotion/internal/weather"
)

var screenTitles = map[session.Screen]string{
	session.ScreenHome:     "Home",
	session.ScreenCalendar: "Calendar",
	session.ScreenGrowth:   "Growth",
	session.ScreenSchedule: "Schedule",
	session.ScreenProfile:  "Profile",
}

var catFrames = map[animation.Phase]string{
	animation.Idle:       " /\\_/\\ \n( o.o )\n > ^ < ",
	animation.Dropping:   "   •   \n /\\_/\\ \n( o.o )\n > ^ < ",
	animation.Chewing:    " /\\_/\\ \n( -.- ) nom\n > ^ < ",
	animation.Swallowing: " /\\_/\\ \n( o_o ) gulp\n > ^ < ",
	animation.Happy:      " /\\_/\\ \n( ^.^ ) ♥\n > ^ < ",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.form != nil {
		b.WriteString(titleStyle.Render(constants.DisplayName))
		b.WriteString("\n\n")
		if m.formKind == formWelcome && m.session.Snapshot().LoadFailed {
			b.WriteString(dangerStyle.Render("Your saved data could not be read. Adoption is disabled until it loads; run 'miaomotion doctor'."))
			b.WriteString("\n\n")
		}
		b.WriteString(m.form.View())
	} else {
		b.WriteString(m.renderTabs())
		b.WriteString("\n\n")
		b.WriteString(m.renderScreen())
	}

	b.WriteString("\n\n")
	if m.errMsg != "" {
		b.WriteString(dangerStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.form == nil {
		b.WriteString(m.help.View(m))
	}
	return docStyle.Render(b.String())
}

func (m Model) renderTabs() string {
	current := m.session.Screen()
	tabs := make([]string, 0, len(session.Screens))
	for _, sc := range session.Screens {
		if sc == current {
			tabs = append(tabs, activeTabStyle.Render(screenTitles[sc]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(screenTitles[sc]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderScreen() string {
	switch m.session.Screen() {
	case session.ScreenHome:
		return m.viewHome()
	case session.ScreenCalendar:
		return m.viewCalendar()
	case session.ScreenGrowth:
		return m.viewGrowth()
	case session.ScreenSchedule:
		return m.schedules.View()
	case session.ScreenProfile:
		return m.viewProfile()
	}
	return ""
}

func (m Model) renderCat() string {
	frame := catStyle.Render(catFrames[m.phase])
	if caption := animation.Caption(m.phase); caption != "" {
		return lipgloss.JoinVertical(lipgloss.Left, frame, mutedStyle.Render(caption))
	}
	return frame
}

func (m Model) viewHome() string {
	snap := m.session.Snapshot()
	cat := snap.Data.Cat

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", weather.Summary(snap.Weather), mutedStyle.Render(snap.LocationLabel))
	fmt.Fprintf(&b, "Food %d · Cans %d · Strips %d\n\n", cat.FoodCount, cat.CanCount, cat.StripCount)

	b.WriteString(titleStyle.Render("Free time today"))
	b.WriteString("\n")
	for _, l := range m.session.FreeTimeToday().Labels() {
		fmt.Fprintf(&b, "  %s\n", l)
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Suggested"))
	b.WriteString("\n")
	recs := m.session.Recommendations()
	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = string(r)
	}
	fmt.Fprintf(&b, "  %s\n\n", strings.Join(names, ", "))

	if snap.CheckedInToday {
		fmt.Fprintf(&b, "✓ Checked in today · %d-day streak\n", cat.StreakDays)
	} else {
		b.WriteString(mutedStyle.Render("Not checked in yet. Press c after your workout."))
		b.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, b.String(), "   ", m.renderCat())
}

func (m Model) viewCalendar() string {
	view := m.session.Month(m.viewYear, m.viewMonth)

	var b strings.Builder
	b.WriteString(titleStyle.Render(view.Title()))
	fmt.Fprintf(&b, "  %s\n\n", mutedStyle.Render(fmt.Sprintf("%d check-ins", view.CheckedInDays())))
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	b.WriteString(renderGrid(view))

	recent := m.session.RecentCheckIns()
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Recent"))
	b.WriteString("\n")
	if len(recent) == 0 {
		b.WriteString(mutedStyle.Render("  No check-ins yet"))
	}
	for _, c := range recent {
		fmt.Fprintf(&b, "  %s  %s\n", c.Date, c.Type)
	}
	return b.String()
}

func renderGrid(view engine.MonthView) string {
	var b strings.Builder
	col := 0
	for ; col < view.Offset; col++ {
		b.WriteString("    ")
	}
	for _, d := range view.Days {
		cell := fmt.Sprintf("%3d", d.Day)
		switch {
		case d.CheckIn != nil:
			cell = checkedDayStyle.Render(cell)
		case d.IsToday:
			cell = todayStyle.Render(cell)
		}
		b.WriteString(cell + " ")
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewGrowth() string {
	cat := m.session.Data().Cat

	const barWidth = 20
	filled := int(cat.WeightPercent() / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	var b strings.Builder
	fmt.Fprintf(&b, "%s the %s cat\n\n", titleStyle.Render(cat.Name), cat.Breed.Label())
	fmt.Fprintf(&b, "Weight %s %.2f / %.0f kg\n", bar, cat.Weight, constants.MaxCatWeight)
	fmt.Fprintf(&b, "Food   %d\n", cat.FoodCount)
	fmt.Fprintf(&b, "Cans   %d\n", cat.CanCount)
	fmt.Fprintf(&b, "Strips %d\n", cat.StripCount)
	if len(cat.UnlockedToys) > 0 {
		fmt.Fprintf(&b, "Toys   %s\n", strings.Join(cat.UnlockedToys, ", "))
	}
	if cat.LastFeedingDate != nil {
		fmt.Fprintf(&b, "\n%s", mutedStyle.Render("Last fed "+*cat.LastFeedingDate))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, b.String(), "   ", m.renderCat())
}

func (m Model) viewProfile() string {
	st := m.session.Stats()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Profile"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Cat             %s (%s)\n", st.CatName, st.Breed.Label())
	fmt.Fprintf(&b, "Total check-ins %d\n", st.TotalCheckIns)
	fmt.Fprintf(&b, "Current streak  %d days\n", st.StreakDays)
	fmt.Fprintf(&b, "Schedules       %d\n", st.ScheduleCount)
	if st.FavoriteSport != "" {
		fmt.Fprintf(&b, "Favorite sport  %s\n", st.FavoriteSport)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press R to reset all data"))
	return b.String()
}
