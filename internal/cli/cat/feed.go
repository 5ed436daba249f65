package cat

import (
	"context"
	"fmt"

	"github.com/julianstephens/miaomotion/internal/cli"
	"github.com/julianstephens/miaomotion/internal/session"
)

type FeedCmd struct{}

func (c *FeedCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	var feeding *session.Feeding
	err = ctx.PlayAnimation(s, func() error {
		var err error
		feeding, err = s.Feed()
		return err
	})
	if err != nil {
		return err
	}
	if err := feeding.Wait(context.Background()); err != nil {
		return err
	}

	cat := s.Data().Cat
	fmt.Printf("✓ %s ate! Weight %.2f kg, %d food left\n", cat.Name, cat.Weight, cat.FoodCount)
	return nil
}
