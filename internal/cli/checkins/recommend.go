package checkins

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/miaomotion/internal/cli"
	"github.com/julianstephens/miaomotion/internal/engine"
	"github.com/julianstephens/miaomotion/internal/weather"
)

type RecommendCmd struct {
	Temp string `help:"Temperature in °C to use instead of the current weather."`
}

func (c *RecommendCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	w := s.Weather()
	if c.Temp != "" {
		t, err := strconv.ParseFloat(c.Temp, 64)
		if err != nil {
			return fmt.Errorf("invalid temperature %q", c.Temp)
		}
		w.Temp = t
	}

	fmt.Printf("%s  %s\n", s.Snapshot().LocationLabel, weather.Summary(w))
	sports := engine.Recommend(w.Temp)
	if len(sports) == 0 {
		fmt.Println("Not a great day to exercise outdoors. Try something indoors!")
		return nil
	}
	fmt.Printf("Suggested: %s\n", cli.FormatSports(sports))
	return nil
}
