package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/miaomotion/internal/animation"
	"github.com/julianstephens/miaomotion/internal/engine"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/session"
)

// PlayAnimation prints each phase of the cycle begun by start and blocks
// until the cat is idle again.
func (c *Context) PlayAnimation(s *session.Session, start func() error) error {
	seq := s.Animation()
	if !c.animHooked {
		c.animHooked = true
		seq.OnPhase(func(p animation.Phase) {
			if caption := animation.Caption(p); caption != "" {
				fmt.Printf("  %s\n", caption)
			}
		})
	}
	if err := start(); err != nil {
		return err
	}
	return seq.Wait(context.Background())
}

// FormatRewards renders the rewards of a check-in for the terminal.
func FormatRewards(res engine.CheckInResult) string {
	parts := make([]string, 0, len(res.Rewards))
	for _, r := range res.Rewards {
		parts = append(parts, session.RewardLabel(r))
	}
	return strings.Join(parts, ", ")
}

// FormatSports joins activity labels for display.
func FormatSports(sports []models.SportType) string {
	if len(sports) == 0 {
		return "none"
	}
	labels := make([]string, len(sports))
	for i, s := range sports {
		labels[i] = s.Label()
	}
	return strings.Join(labels, ", ")
}

// FormatOptionalDate prints a nullable date.
func FormatOptionalDate(d *string) string {
	if d == nil {
		return "never"
	}
	return *d
}
