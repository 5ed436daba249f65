package engine

import (
	"math"

	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/utils"
)

// WeightPerFeed is the weight one feeding adds before clamping.
const WeightPerFeed = constants.WeightStepKg / constants.FeedsPerWeightStep

// CanFeed reports whether a feed would be accepted.
func CanFeed(data models.UserData) bool {
	return data.Cat.FoodCount > 0
}

// Feed consumes one food item and grows the cat.
func Feed(data models.UserData, today string) (models.UserData, error) {
	if !utils.ValidateDateFormat(today) {
		return data, ErrInvalidDate
	}
	if !CanFeed(data) {
		return data, ErrInsufficientFood
	}

	next := data.Clone()
	next.Cat.FoodCount--
	next.Cat.Weight = clampWeight(next.Cat.Weight + WeightPerFeed)
	d := today
	next.Cat.LastFeedingDate = &d
	return next, nil
}

func clampWeight(w float64) float64 {
	w = math.Max(constants.MinCatWeight, math.Min(constants.MaxCatWeight, w))
	return math.Round(w*100) / 100
}
