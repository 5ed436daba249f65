package engine

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/utils"
)

// AddSchedule appends a new item with a fresh id. Overlapping and inverted
// ranges are accepted; the validate command reports them.
func AddSchedule(data models.UserData, date, start, end, task string) (models.UserData, models.ScheduleItem, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return data, models.ScheduleItem{}, ErrEmptyTask
	}
	if !utils.ValidateDateFormat(date) {
		return data, models.ScheduleItem{}, ErrInvalidDate
	}
	if !utils.ValidateTimeFormat(start) || !utils.ValidateTimeFormat(end) {
		return data, models.ScheduleItem{}, ErrInvalidTime
	}

	item := models.ScheduleItem{
		ID:        uuid.New().String(),
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Task:      task,
	}
	next := data.Clone()
	next.Schedules = append(next.Schedules, item)
	return next, item, nil
}

// DeleteSchedule removes the item with id. Deleting an unknown id is a no-op;
// the bool reports whether anything was removed.
func DeleteSchedule(data models.UserData, id string) (models.UserData, bool) {
	next := data.Clone()
	before := len(next.Schedules)
	next.Schedules = slices.DeleteFunc(next.Schedules, func(s models.ScheduleItem) bool {
		return s.ID == id
	})
	return next, len(next.Schedules) != before
}

// SortedSchedules returns the items on date ordered by start time.
func SortedSchedules(data models.UserData, date string) []models.ScheduleItem {
	items := data.SchedulesOn(date)
	slices.SortStableFunc(items, func(a, b models.ScheduleItem) int {
		return strings.Compare(a.StartTime, b.StartTime)
	})
	return items
}
