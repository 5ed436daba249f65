package schedules

import (
	"fmt"
	"strings"

	"github.com/julianstephens/miaomotion/internal/cli"
	"github.com/julianstephens/miaomotion/internal/engine"
	"github.com/julianstephens/miaomotion/internal/session"
	"github.com/julianstephens/miaomotion/internal/validation"
)

func resolveDate(s *session.Session, date string) string {
	if date == "" {
		return s.Today()
	}
	return date
}

type ScheduleAddCmd struct {
	Task  string `arg:"" help:"What you are busy with."`
	Start string `help:"Start time (HH:MM)." required:""`
	End   string `help:"End time (HH:MM)." required:""`
	Date  string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	date := resolveDate(s, c.Date)

	form := validation.ScheduleForm{Date: date, StartTime: c.Start, EndTime: c.End, Task: c.Task}
	if err := validation.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", engine.ErrRejected, err)
	}

	item, err := s.AddSchedule(date, c.Start, c.End, c.Task)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added %s %s %s (id %s)\n", item.Date, item.StartTime+"-"+item.EndTime, item.Task, item.ID)
	if item.EndTime < item.StartTime {
		fmt.Println("  ⚠ End time is before start time; this block will not reduce your free time.")
	}
	return nil
}

type ScheduleListCmd struct {
	Date string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	date := resolveDate(s, c.Date)

	items := s.Schedules(date)
	if len(items) == 0 {
		fmt.Printf("Nothing scheduled on %s.\n", date)
		return nil
	}
	fmt.Printf("Schedule for %s:\n", date)
	for _, it := range items {
		fmt.Printf("  %s-%s  %s  [%s]\n", it.StartTime, it.EndTime, it.Task, it.ID)
	}
	return nil
}

type ScheduleDeleteCmd struct {
	ID string `arg:"" help:"ID of the schedule item to delete."`
}

func (c *ScheduleDeleteCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	removed, err := s.DeleteSchedule(c.ID)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("No schedule item with id %s.\n", c.ID)
		return nil
	}
	fmt.Printf("✓ Deleted %s\n", c.ID)
	return nil
}

type FreeCmd struct {
	Date string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *FreeCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	date := resolveDate(s, c.Date)
	if err := validation.Struct(validation.ScheduleForm{Date: date, StartTime: "00:00", EndTime: "00:00"}); err != nil {
		return fmt.Errorf("%w: %v", engine.ErrRejected, err)
	}

	fmt.Printf("Free time on %s:\n", date)
	for _, label := range s.FreeTime(date).Labels() {
		fmt.Printf("  %s\n", label)
	}
	fmt.Printf("Suggested: %s\n", strings.ToLower(cli.FormatSports(s.Recommendations())))
	return nil
}
