package engine

import (
	"reflect"
	"testing"

	"github.com/julianstephens/miaomotion/internal/models"
)

func item(date, start, end string) models.ScheduleItem {
	return models.ScheduleItem{ID: date + start + end, Date: date, StartTime: start, EndTime: end, Task: "x"}
}

func TestFreeSlots(t *testing.T) {
	const d = "2024-05-01"
	tests := []struct {
		name      string
		schedules []models.ScheduleItem
		wantKind  FreeTimeKind
		want      []string
	}{
		{
			name:     "no items",
			wantKind: FreeFullDay,
			want:     []string{"Free all day"},
		},
		{
			name:      "single class",
			schedules: []models.ScheduleItem{item(d, "09:00", "11:00")},
			wantKind:  FreePartial,
			want:      []string{"06:00-09:00", "11:00-22:00"},
		},
		{
			name:      "other dates ignored",
			schedules: []models.ScheduleItem{item("2024-05-02", "09:00", "11:00")},
			wantKind:  FreeFullDay,
			want:      []string{"Free all day"},
		},
		{
			name: "unsorted with overlap and containment",
			schedules: []models.ScheduleItem{
				item(d, "14:00", "15:00"),
				item(d, "08:00", "12:00"),
				item(d, "09:00", "10:00"),
				item(d, "11:30", "13:00"),
			},
			wantKind: FreePartial,
			want:     []string{"06:00-08:00", "13:00-14:00", "15:00-22:00"},
		},
		{
			name:      "covers whole window",
			schedules: []models.ScheduleItem{item(d, "06:00", "12:00"), item(d, "12:00", "22:00")},
			wantKind:  FreeNone,
			want:      []string{"No free time"},
		},
		{
			name:      "exceeds window on both sides",
			schedules: []models.ScheduleItem{item(d, "05:00", "23:00")},
			wantKind:  FreeNone,
			want:      []string{"No free time"},
		},
		{
			name:      "starts after window",
			schedules: []models.ScheduleItem{item(d, "20:00", "21:00"), item(d, "22:30", "23:00")},
			wantKind:  FreePartial,
			want:      []string{"06:00-20:00", "21:00-22:00"},
		},
		{
			name:      "inverted item occupies nothing",
			schedules: []models.ScheduleItem{item(d, "10:00", "09:00")},
			wantKind:  FreePartial,
			want:      []string{"06:00-10:00", "10:00-22:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeSlots(tt.schedules, d)
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if labels := got.Labels(); !reflect.DeepEqual(labels, tt.want) {
				t.Errorf("Labels() = %v, want %v", labels, tt.want)
			}
		})
	}
}

// Free slots and busy intervals must tile the window exactly when items stay
// inside it.
func TestFreeSlotsTileWindow(t *testing.T) {
	const d = "2024-05-01"
	schedules := []models.ScheduleItem{
		item(d, "07:15", "08:00"),
		item(d, "07:30", "09:45"),
		item(d, "12:00", "12:30"),
		item(d, "18:00", "21:59"),
	}
	free := FreeSlots(schedules, d)

	minute := func(hhmm string) int {
		return int(hhmm[0]-'0')*600 + int(hhmm[1]-'0')*60 + int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	}
	covered := make([]int, 24*60)
	for _, s := range free.Slots {
		for m := minute(s.Start); m < minute(s.End); m++ {
			covered[m]++
		}
	}
	for i := range covered {
		if covered[i] > 1 {
			t.Fatalf("free slots overlap at minute %d", i)
		}
	}
	for _, s := range schedules {
		for m := minute(s.StartTime); m < minute(s.EndTime); m++ {
			if covered[m] == 1 {
				t.Fatalf("free slot overlaps %s-%s at minute %d", s.StartTime, s.EndTime, m)
			}
			covered[m] = 2
		}
	}
	for m := 6 * 60; m < 22*60; m++ {
		if covered[m] == 0 {
			t.Fatalf("minute %d is neither free nor busy", m)
		}
	}
}
