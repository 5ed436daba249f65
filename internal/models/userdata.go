package models

import (
	"slices"

	"github.com/julianstephens/miaomotion/internal/constants"
)

// UserData is the single persisted aggregate. Everything below it is owned
// exclusively by it.
type UserData struct {
	Schedules []ScheduleItem `json:"schedules"`
	CheckIns  []CheckIn      `json:"checkIns"`
	Cat       CatState       `json:"cat"`
}

// DefaultUserData returns the aggregate used on first run.
func DefaultUserData() UserData {
	return UserData{
		Schedules: []ScheduleItem{},
		CheckIns:  []CheckIn{},
		Cat:       DefaultCat(),
	}
}

// Clone returns a deep copy. Transitions work on clones so the caller's
// snapshot is never mutated.
func (d UserData) Clone() UserData {
	out := UserData{
		Schedules: slices.Clone(d.Schedules),
		CheckIns:  slices.Clone(d.CheckIns),
		Cat:       d.Cat.Clone(),
	}
	if out.Schedules == nil {
		out.Schedules = []ScheduleItem{}
	}
	if out.CheckIns == nil {
		out.CheckIns = []CheckIn{}
	}
	return out
}

// Normalize fills nil collections left behind by older or hand-edited blobs.
func (d *UserData) Normalize() {
	if d.Schedules == nil {
		d.Schedules = []ScheduleItem{}
	}
	if d.CheckIns == nil {
		d.CheckIns = []CheckIn{}
	}
	if d.Cat.UnlockedToys == nil {
		d.Cat.UnlockedToys = []string{}
	}
	if d.Cat.Breed == "" {
		d.Cat.Breed = BreedOrange
	}
	if d.Cat.Name == "" {
		d.Cat.Name = constants.DefaultCatName
	}
}

// CheckInFor returns the check-in recorded for date, if any.
func (d UserData) CheckInFor(date string) (CheckIn, bool) {
	for _, c := range d.CheckIns {
		if c.Date == date {
			return c, true
		}
	}
	return CheckIn{}, false
}

// HasCheckedIn reports whether a check-in exists for date.
func (d UserData) HasCheckedIn(date string) bool {
	_, ok := d.CheckInFor(date)
	return ok
}

// SchedulesOn returns the schedule items for a single date in stored order.
func (d UserData) SchedulesOn(date string) []ScheduleItem {
	var items []ScheduleItem
	for _, s := range d.Schedules {
		if s.Date == date {
			items = append(items, s)
		}
	}
	return items
}
