package checkins

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/miaomotion/internal/cli"
	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/engine"
)

type CalendarCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	view := s.CurrentMonth()
	if c.Month != "" {
		t, err := time.Parse(constants.MonthFormat, c.Month)
		if err != nil {
			return fmt.Errorf("%w: month must be YYYY-MM", engine.ErrInvalidDate)
		}
		view = s.Month(t.Year(), t.Month())
	}

	fmt.Print(RenderMonth(view))
	fmt.Printf("\n%d check-in(s) this month\n", view.CheckedInDays())

	recent := s.RecentCheckIns()
	if len(recent) == 0 {
		return nil
	}
	fmt.Println("\nRecent:")
	for _, ci := range recent {
		fmt.Printf("  %s  %s\n", ci.Date, ci.Type.Label())
	}
	return nil
}

// RenderMonth draws a Sunday-first grid. Checked-in days are marked with *,
// today is bracketed.
func RenderMonth(view engine.MonthView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", view.Title())
	b.WriteString(" Su   Mo   Tu   We   Th   Fr   Sa\n")

	col := 0
	for ; col < view.Offset; col++ {
		b.WriteString("     ")
	}
	for _, d := range view.Days {
		mark := " "
		if d.CheckIn != nil {
			mark = "*"
		}
		if d.IsToday {
			fmt.Fprintf(&b, "[%2d]%s", d.Day, mark)
		} else {
			fmt.Fprintf(&b, " %2d %s", d.Day, mark)
		}
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}
