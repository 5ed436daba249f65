package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvertedRange      ConflictType = "inverted_range"
	ConflictOverlappingItems   ConflictType = "overlapping_schedule_items"
	ConflictDuplicateID        ConflictType = "duplicate_schedule_id"
	ConflictInvalidDateTime    ConflictType = "invalid_datetime"
	ConflictDuplicateCheckIn   ConflictType = "duplicate_check_in"
	ConflictWeightOutOfRange   ConflictType = "weight_out_of_range"
	ConflictDuplicateToy       ConflictType = "duplicate_toy"
	ConflictNegativeCounter    ConflictType = "negative_counter"
	ConflictTotalBelowCheckIns ConflictType = "total_below_check_ins"
)

// Conflict is one problem found in a persisted aggregate.
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD (if applicable)
	Items       []string // schedule ids, toy names, ...
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator inspects a whole aggregate. The engine accepts overlapping and
// inverted schedule items, so they surface here as reportable conflicts.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateUserData(data models.UserData) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.Conflicts = append(result.Conflicts, v.validateSchedules(data.Schedules)...)
	result.Conflicts = append(result.Conflicts, v.validateCheckIns(data.CheckIns)...)
	result.Conflicts = append(result.Conflicts, v.validateCat(data.Cat, len(data.CheckIns))...)
	return result
}

func (v *Validator) validateSchedules(items []models.ScheduleItem) []Conflict {
	var conflicts []Conflict

	seen := make(map[string]int)
	for _, it := range items {
		seen[it.ID]++
	}
	ids := make([]string, 0, len(seen))
	for id, n := range seen {
		if n > 1 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateID,
			Description: fmt.Sprintf("Schedule id %q is used by %d items", id, seen[id]),
			Items:       []string{id},
		})
	}

	byDate := make(map[string][]models.ScheduleItem)
	for _, it := range items {
		if !utils.ValidateDateFormat(it.Date) || !utils.ValidateTimeFormat(it.StartTime) || !utils.ValidateTimeFormat(it.EndTime) {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Schedule item %q has an invalid date or time (%s %s-%s)", it.Task, it.Date, it.StartTime, it.EndTime),
				Date:        it.Date,
				Items:       []string{it.ID},
			})
			continue
		}
		if it.StartTime > it.EndTime {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvertedRange,
				Description: fmt.Sprintf("Schedule item %q on %s ends before it starts (%s-%s)", it.Task, it.Date, it.StartTime, it.EndTime),
				Date:        it.Date,
				Items:       []string{it.ID},
			})
			continue
		}
		byDate[it.Date] = append(byDate[it.Date], it)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, date := range dates {
		day := byDate[date]
		sort.SliceStable(day, func(i, j int) bool { return day[i].StartTime < day[j].StartTime })
		for i := 0; i < len(day); i++ {
			for j := i + 1; j < len(day); j++ {
				if day[j].StartTime >= day[i].EndTime {
					break
				}
				conflicts = append(conflicts, Conflict{
					Type: ConflictOverlappingItems,
					Description: fmt.Sprintf("Schedule items %q (%s-%s) and %q (%s-%s) overlap on %s",
						day[i].Task, day[i].StartTime, day[i].EndTime,
						day[j].Task, day[j].StartTime, day[j].EndTime, date),
					Date:  date,
					Items: []string{day[i].ID, day[j].ID},
				})
			}
		}
	}

	return conflicts
}

func (v *Validator) validateCheckIns(checkIns []models.CheckIn) []Conflict {
	var conflicts []Conflict
	seen := make(map[string]bool)
	reported := make(map[string]bool)
	for _, c := range checkIns {
		if seen[c.Date] && !reported[c.Date] {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateCheckIn,
				Description: fmt.Sprintf("More than one check-in recorded for %s", c.Date),
				Date:        c.Date,
			})
			reported[c.Date] = true
		}
		seen[c.Date] = true
	}
	return conflicts
}

func (v *Validator) validateCat(cat models.CatState, checkIns int) []Conflict {
	var conflicts []Conflict

	if cat.Weight < constants.MinCatWeight || cat.Weight > constants.MaxCatWeight {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictWeightOutOfRange,
			Description: fmt.Sprintf("Cat weight %.2f kg is outside [%.0f, %.0f]", cat.Weight, constants.MinCatWeight, constants.MaxCatWeight),
		})
	}

	toys := make(map[string]bool)
	for _, toy := range cat.UnlockedToys {
		if toys[toy] {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateToy,
				Description: fmt.Sprintf("Toy %q is unlocked more than once", toy),
				Items:       []string{toy},
			})
		}
		toys[toy] = true
	}

	counters := []struct {
		name  string
		value int
	}{
		{"foodCount", cat.FoodCount},
		{"canCount", cat.CanCount},
		{"stripCount", cat.StripCount},
		{"streakDays", cat.StreakDays},
		{"totalCheckIns", cat.TotalCheckIns},
	}
	for _, c := range counters {
		if c.value < 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictNegativeCounter,
				Description: fmt.Sprintf("Counter %s is negative (%d)", c.name, c.value),
				Items:       []string{c.name},
			})
		}
	}

	if cat.TotalCheckIns < checkIns {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictTotalBelowCheckIns,
			Description: fmt.Sprintf("totalCheckIns (%d) is lower than the number of recorded check-ins (%d)", cat.TotalCheckIns, checkIns),
		})
	}

	return conflicts
}
