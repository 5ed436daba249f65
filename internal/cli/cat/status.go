package cat

import (
	"fmt"
	"strings"

	"github.com/julianstephens/miaomotion/internal/cli"
	"github.com/julianstephens/miaomotion/internal/weather"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	snap := s.Snapshot()
	if snap.FirstRun {
		fmt.Println("No cat yet. Run 'miaomotion adopt' to get started.")
		return nil
	}

	cat := snap.Data.Cat
	fmt.Printf("%s (%s)\n", cat.Name, cat.Breed.Label())
	fmt.Printf("  Weight:   %.2f kg\n", cat.Weight)
	fmt.Printf("  Streak:   %d day(s)\n", cat.StreakDays)
	fmt.Printf("  Pantry:   %d food, %d can, %d strip\n", cat.FoodCount, cat.CanCount, cat.StripCount)
	if len(cat.UnlockedToys) > 0 {
		fmt.Printf("  Toys:     %s\n", strings.Join(cat.UnlockedToys, ", "))
	}
	fmt.Println()

	if ci, ok := snap.Data.CheckInFor(snap.Today); ok {
		fmt.Printf("Today (%s): checked in (%s)\n", snap.Today, ci.Type.Label())
	} else {
		fmt.Printf("Today (%s): not checked in yet\n", snap.Today)
	}
	fmt.Printf("Free time: %s\n", strings.Join(s.FreeTime(snap.Today).Labels(), ", "))
	fmt.Printf("%s  %s\n", snap.LocationLabel, weather.Summary(snap.Weather))
	fmt.Printf("Suggested: %s\n", cli.FormatSports(s.Recommendations()))
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	st := s.Stats()

	fmt.Printf("%s the %s cat\n\n", st.CatName, st.Breed.Label())
	fmt.Printf("  Total check-ins: %d\n", st.TotalCheckIns)
	fmt.Printf("  Current streak:  %d\n", st.StreakDays)
	fmt.Printf("  Weight:          %.2f kg\n", st.Weight)
	fmt.Printf("  Food / can / strip: %d / %d / %d\n", st.FoodCount, st.CanCount, st.StripCount)
	fmt.Printf("  Schedule items:  %d\n", st.ScheduleCount)
	if st.FavoriteSport != "" {
		fmt.Printf("  Favourite:       %s\n", st.FavoriteSport.Label())
	}
	if len(st.UnlockedToys) == 0 {
		fmt.Println("  Toys:            none yet (reach a 10-day streak)")
	} else {
		fmt.Printf("  Toys:            %s\n", strings.Join(st.UnlockedToys, ", "))
	}
	return nil
}
