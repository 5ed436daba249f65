package checkins

import (
	"fmt"

	"github.com/julianstephens/miaomotion/internal/cli"
	"github.com/julianstephens/miaomotion/internal/engine"
	"github.com/julianstephens/miaomotion/internal/models"
)

type CheckinCmd struct {
	Sport string `arg:"" help:"Activity: walk, running, cycling, hiking, badminton, other, ..."`
	Date  string `help:"Check in for an earlier date (YYYY-MM-DD) instead of today. Must not be before your last check-in."`
}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	sport, err := models.ParseSportType(c.Sport)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrInvalidSport, err)
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	date := c.Date
	if date == "" {
		date = s.Today()
	}

	var res engine.CheckInResult
	err = ctx.PlayAnimation(s, func() error {
		var err error
		res, err = s.SubmitCheckInOn(date, sport)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Checked in %s for %s\n", sport.Label(), date)
	if res.Continuous {
		fmt.Printf("  Streak: %d days in a row\n", res.Streak)
	} else {
		fmt.Printf("  Streak: %d day\n", res.Streak)
	}
	if res.Milestone > 0 {
		fmt.Printf("  🎉 %d-day milestone!\n", res.Milestone)
	}
	fmt.Printf("  Rewards: %s\n", cli.FormatRewards(res))
	return nil
}
