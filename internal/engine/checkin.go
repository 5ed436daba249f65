package engine

import (
	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/utils"
)

// RewardKind identifies a reward granted by a check-in.
type RewardKind string

const (
	RewardFood  RewardKind = "food"
	RewardCan   RewardKind = "can"
	RewardToy   RewardKind = "toy"
	RewardStrip RewardKind = "strip"
)

// Reward is one item granted by a check-in. Toy is set for RewardToy.
type Reward struct {
	Kind RewardKind
	Toy  string
}

// CheckInResult describes what an accepted check-in changed.
type CheckInResult struct {
	Streak     int
	Continuous bool
	Rewards    []Reward
	// Milestone is the streak value that triggered a milestone reward, or 0.
	Milestone int
}

// SubmitCheckIn records a check-in for date and folds the streak and rewards
// into a new aggregate. The input is never mutated.
func SubmitCheckIn(data models.UserData, date string, sport models.SportType) (models.UserData, CheckInResult, error) {
	if !utils.ValidateDateFormat(date) {
		return data, CheckInResult{}, ErrInvalidDate
	}
	if _, err := models.ParseSportType(string(sport)); err != nil {
		return data, CheckInResult{}, ErrInvalidSport
	}
	if data.HasCheckedIn(date) {
		return data, CheckInResult{}, ErrAlreadyCheckedIn
	}
	// The streak only moves forward; a backfilled day would rewind it.
	if last := data.Cat.LastCheckInDate; last != nil && date < *last {
		return data, CheckInResult{}, ErrOutOfOrderDate
	}

	next := data.Clone()
	next.CheckIns = append(next.CheckIns, models.CheckIn{Date: date, Type: sport})

	yesterday, err := utils.PreviousDay(date)
	if err != nil {
		return data, CheckInResult{}, ErrInvalidDate
	}
	cat := &next.Cat
	continuous := cat.LastCheckInDate != nil && *cat.LastCheckInDate == yesterday
	streak := 1
	if continuous {
		streak = cat.StreakDays + 1
	}

	result := CheckInResult{Streak: streak, Continuous: continuous}
	switch streak {
	case constants.MilestoneCanStreak:
		cat.CanCount++
		result.Milestone = streak
		result.Rewards = append(result.Rewards, Reward{Kind: RewardCan})
	case constants.MilestoneToyStreak:
		result.Milestone = streak
		if !cat.HasToy(constants.ToyYarnBall) {
			cat.UnlockedToys = append(cat.UnlockedToys, constants.ToyYarnBall)
			result.Rewards = append(result.Rewards, Reward{Kind: RewardToy, Toy: constants.ToyYarnBall})
		}
	case constants.MilestoneStripStreak:
		cat.StripCount++
		result.Milestone = streak
		result.Rewards = append(result.Rewards, Reward{Kind: RewardStrip})
	}

	cat.FoodCount++
	result.Rewards = append(result.Rewards, Reward{Kind: RewardFood})

	d := date
	cat.LastCheckInDate = &d
	cat.TotalCheckIns++
	cat.StreakDays = streak

	return next, result, nil
}
