package session

import (
	"fmt"
	"strings"

	"github.com/julianstephens/miaomotion/internal/engine"
)

// RewardMessage renders the rewards of a check-in, e.g.
// "5-day streak! +1 can, +1 food".
func RewardMessage(res engine.CheckInResult) string {
	parts := make([]string, 0, len(res.Rewards))
	for _, r := range res.Rewards {
		parts = append(parts, RewardLabel(r))
	}
	msg := strings.Join(parts, ", ")
	if res.Milestone > 0 {
		return fmt.Sprintf("%d-day streak! %s", res.Milestone, msg)
	}
	return msg
}

func RewardLabel(r engine.Reward) string {
	switch r.Kind {
	case engine.RewardFood:
		return "+1 food"
	case engine.RewardCan:
		return "+1 can"
	case engine.RewardStrip:
		return "+1 jerky strip"
	case engine.RewardToy:
		return "unlocked " + r.Toy
	}
	return string(r.Kind)
}
