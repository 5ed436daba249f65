package models

import (
	"fmt"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/julianstephens/miaomotion/internal/constants"
)

// Breed is the cosmetic cat breed chosen at adoption.
type Breed string

const (
	BreedOrange  Breed = "orange"
	BreedCalico  Breed = "calico"
	BreedTuxedo  Breed = "tuxedo"
	BreedSiamese Breed = "siamese"
)

// Breeds lists every adoptable breed in display order.
var Breeds = []Breed{BreedOrange, BreedCalico, BreedTuxedo, BreedSiamese}

var breedDescriptions = map[Breed]string{
	BreedOrange:  "Lively and greedy, puts on weight easily",
	BreedCalico:  "Quirky and clever, moods change by the hour",
	BreedTuxedo:  "Endless energy, a tiny gentleman",
	BreedSiamese: "Smart and clingy, a loyal companion",
}

// ParseBreed validates a breed identifier.
func ParseBreed(s string) (Breed, error) {
	b := Breed(s)
	if !slices.Contains(Breeds, b) {
		return "", fmt.Errorf("unknown breed %q (expected one of orange, calico, tuxedo, siamese)", s)
	}
	return b, nil
}

func (b Breed) Label() string {
	return cases.Title(language.English).String(string(b))
}

func (b Breed) Description() string {
	return breedDescriptions[b]
}

// CatState is the pet and reward ledger.
type CatState struct {
	Name            string   `json:"name"`
	Breed           Breed    `json:"breed"`
	Weight          float64  `json:"weight"`
	FoodCount       int      `json:"foodCount"`
	CanCount        int      `json:"canCount"`
	StripCount      int      `json:"stripCount"`
	UnlockedToys    []string `json:"unlockedToys"`
	StreakDays      int      `json:"streakDays"`
	LastCheckInDate *string  `json:"lastCheckInDate"`
	LastFeedingDate *string  `json:"lastFeedingDate"`
	TotalCheckIns   int      `json:"totalCheckIns"`
}

// DefaultCat returns the cat every new user starts with.
func DefaultCat() CatState {
	return CatState{
		Name:         constants.DefaultCatName,
		Breed:        BreedOrange,
		Weight:       constants.DefaultCatWeight,
		UnlockedToys: []string{},
	}
}

func (c CatState) Clone() CatState {
	out := c
	out.UnlockedToys = slices.Clone(c.UnlockedToys)
	if out.UnlockedToys == nil {
		out.UnlockedToys = []string{}
	}
	if c.LastCheckInDate != nil {
		d := *c.LastCheckInDate
		out.LastCheckInDate = &d
	}
	if c.LastFeedingDate != nil {
		d := *c.LastFeedingDate
		out.LastFeedingDate = &d
	}
	return out
}

// HasToy reports whether toy is already unlocked.
func (c CatState) HasToy(toy string) bool {
	return slices.Contains(c.UnlockedToys, toy)
}

// WeightPercent is the fill ratio of the weight bar (weight / max).
func (c CatState) WeightPercent() float64 {
	return c.Weight / constants.MaxCatWeight * 100
}
