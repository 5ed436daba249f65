package models

import "fmt"

// ScheduleItem is a busy block on a calendar date. Items are created and
// deleted, never edited.
type ScheduleItem struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	Task      string `json:"task"`
	Date      string `json:"date"` // YYYY-MM-DD
}

// TimeRange is a half-open [Start, End) interval of HH:MM strings.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
