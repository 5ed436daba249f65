package engine

import "github.com/julianstephens/miaomotion/internal/models"

// Stats is the profile screen summary.
type Stats struct {
	CatName       string
	Breed         models.Breed
	TotalCheckIns int
	StreakDays    int
	Weight        float64
	FoodCount     int
	CanCount      int
	StripCount    int
	UnlockedToys  []string
	ScheduleCount int
	// FavoriteSport is the most frequent activity, the first to reach the top count wins ties.
	FavoriteSport models.SportType
}

func ComputeStats(data models.UserData) Stats {
	s := Stats{
		CatName:       data.Cat.Name,
		Breed:         data.Cat.Breed,
		TotalCheckIns: data.Cat.TotalCheckIns,
		StreakDays:    data.Cat.StreakDays,
		Weight:        data.Cat.Weight,
		FoodCount:     data.Cat.FoodCount,
		CanCount:      data.Cat.CanCount,
		StripCount:    data.Cat.StripCount,
		UnlockedToys:  append([]string{}, data.Cat.UnlockedToys...),
		ScheduleCount: len(data.Schedules),
	}

	counts := make(map[models.SportType]int)
	best := 0
	for _, c := range data.CheckIns {
		counts[c.Type]++
		if counts[c.Type] > best {
			best = counts[c.Type]
			s.FavoriteSport = c.Type
		}
	}
	return s
}
