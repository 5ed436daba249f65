package models

import (
	"fmt"
	"slices"
)

// SportType is the fixed enumeration of activity kinds a check-in may record.
type SportType string

const (
	SportWalk        SportType = "walk"
	SportJogging     SportType = "jogging"
	SportCycling     SportType = "cycling"
	SportBadminton   SportType = "badminton"
	SportRunning     SportType = "running"
	SportRopeJumping SportType = "rope-jumping"
	SportHiking      SportType = "hiking"
	SportYoga        SportType = "outdoor-yoga"
	SportFrisbee     SportType = "frisbee"
	SportFastWalk    SportType = "fast-walk"
	SportNightRun    SportType = "dawn-night-run"
	SportStretch     SportType = "park-stretch"
	SportOther       SportType = "other"
)

// SportTypes lists every known activity kind.
var SportTypes = []SportType{
	SportWalk, SportJogging, SportCycling, SportBadminton, SportRunning,
	SportRopeJumping, SportHiking, SportYoga, SportFrisbee, SportFastWalk,
	SportNightRun, SportStretch, SportOther,
}

// CheckInChoices are the activities offered by the check-in prompt.
var CheckInChoices = []SportType{
	SportWalk, SportRunning, SportCycling, SportHiking, SportBadminton, SportOther,
}

var sportLabels = map[SportType]string{
	SportWalk:        "Walk",
	SportJogging:     "Jogging",
	SportCycling:     "Cycling",
	SportBadminton:   "Badminton",
	SportRunning:     "Running",
	SportRopeJumping: "Rope jumping",
	SportHiking:      "Hiking",
	SportYoga:        "Outdoor yoga",
	SportFrisbee:     "Frisbee",
	SportFastWalk:    "Fast walk",
	SportNightRun:    "Dawn/night run",
	SportStretch:     "Park stretch",
	SportOther:       "Other",
}

// ParseSportType validates an activity identifier.
func ParseSportType(s string) (SportType, error) {
	t := SportType(s)
	if !slices.Contains(SportTypes, t) {
		return "", fmt.Errorf("unknown activity %q", s)
	}
	return t, nil
}

func (t SportType) Label() string {
	if l, ok := sportLabels[t]; ok {
		return l
	}
	return string(t)
}

// CheckIn records that the user exercised on a date. At most one per date.
type CheckIn struct {
	Date string    `json:"date"`
	Type SportType `json:"type"`
}
