package engine

import (
	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/models"
)

// Recommend maps a temperature in °C to suggested activities. Bands are
// [5,15), [15,25) and [25,30]; anything outside gets no suggestion.
func Recommend(temp float64) []models.SportType {
	switch {
	case temp < constants.RecommendMinTemp || temp > constants.RecommendMaxTemp:
		return []models.SportType{}
	case temp < constants.RecommendCoolTemp:
		return []models.SportType{models.SportWalk, models.SportJogging, models.SportCycling}
	case temp < constants.RecommendMildTemp:
		return []models.SportType{models.SportRunning, models.SportHiking, models.SportYoga}
	default:
		return []models.SportType{models.SportFastWalk, models.SportNightRun, models.SportStretch}
	}
}
