package engine

import (
	"fmt"
	"time"

	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/utils"
)

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date    string
	Day     int
	IsToday bool
	CheckIn *models.CheckIn
}

// MonthView is the check-in calendar for one month.
type MonthView struct {
	Year  int
	Month time.Month
	// Offset is the weekday of day 1 (0 = Sunday), i.e. the number of
	// blank cells before it.
	Offset int
	Days   []CalendarDay
}

// Title renders e.g. "May 2024".
func (m MonthView) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// CheckedInDays counts the days of the month with a check-in.
func (m MonthView) CheckedInDays() int {
	n := 0
	for _, d := range m.Days {
		if d.CheckIn != nil {
			n++
		}
	}
	return n
}

// Month builds the calendar grid for year/month, marking today.
func Month(data models.UserData, year int, month time.Month, today string) MonthView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysIn := first.AddDate(0, 1, -1).Day()

	byDate := make(map[string]models.CheckIn, len(data.CheckIns))
	for _, c := range data.CheckIns {
		if _, ok := byDate[c.Date]; !ok {
			byDate[c.Date] = c
		}
	}

	view := MonthView{
		Year:   year,
		Month:  month,
		Offset: int(first.Weekday()),
		Days:   make([]CalendarDay, 0, daysIn),
	}
	for day := 1; day <= daysIn; day++ {
		date := utils.FormatDate(first.AddDate(0, 0, day-1))
		cell := CalendarDay{Date: date, Day: day, IsToday: date == today}
		if c, ok := byDate[date]; ok {
			cell.CheckIn = &c
		}
		view.Days = append(view.Days, cell)
	}
	return view
}

// RecentCheckIns returns up to n check-ins, newest first.
func RecentCheckIns(data models.UserData, n int) []models.CheckIn {
	if n <= 0 {
		return []models.CheckIn{}
	}
	out := make([]models.CheckIn, 0, n)
	for i := len(data.CheckIns) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, data.CheckIns[i])
	}
	return out
}
