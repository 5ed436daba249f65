package engine

import (
	"sort"

	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/models"
)

// FreeTimeKind distinguishes the three shapes a day's free time can take.
type FreeTimeKind int

const (
	FreeFullDay FreeTimeKind = iota
	FreePartial
	FreeNone
)

// FreeTime is the derived free-time view for one date.
type FreeTime struct {
	Kind  FreeTimeKind
	Slots []models.TimeRange
}

// Labels renders the view the way the home screen lists it.
func (f FreeTime) Labels() []string {
	switch f.Kind {
	case FreeFullDay:
		return []string{"Free all day"}
	case FreeNone:
		return []string{"No free time"}
	}
	labels := make([]string, len(f.Slots))
	for i, s := range f.Slots {
		labels[i] = s.String()
	}
	return labels
}

// FreeSlots derives the gaps in [06:00, 22:00) left by the schedule items on
// date. Comparison is lexicographic on zero-padded HH:MM strings. Overlapping
// or contained items never move the cursor backwards.
func FreeSlots(schedules []models.ScheduleItem, date string) FreeTime {
	var day []models.ScheduleItem
	for _, s := range schedules {
		if s.Date == date {
			day = append(day, s)
		}
	}
	if len(day) == 0 {
		return FreeTime{
			Kind:  FreeFullDay,
			Slots: []models.TimeRange{{Start: constants.DayWindowStart, End: constants.DayWindowEnd}},
		}
	}

	sort.SliceStable(day, func(i, j int) bool { return day[i].StartTime < day[j].StartTime })

	var slots []models.TimeRange
	lastEnd := constants.DayWindowStart
	for _, item := range day {
		if item.StartTime > lastEnd {
			slots = append(slots, models.TimeRange{Start: lastEnd, End: minTime(item.StartTime, constants.DayWindowEnd)})
		}
		end := item.EndTime
		if end < item.StartTime {
			// inverted items occupy nothing
			end = item.StartTime
		}
		if end > lastEnd {
			lastEnd = end
		}
		if lastEnd >= constants.DayWindowEnd {
			break
		}
	}
	if lastEnd < constants.DayWindowEnd {
		slots = append(slots, models.TimeRange{Start: lastEnd, End: constants.DayWindowEnd})
	}

	// A gap that starts at or past the window end is not free time.
	kept := slots[:0]
	for _, s := range slots {
		if s.Start < s.End {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return FreeTime{Kind: FreeNone}
	}
	return FreeTime{Kind: FreePartial, Slots: kept}
}

func minTime(a, b string) string {
	if a < b {
		return a
	}
	return b
}
