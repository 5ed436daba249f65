package engine

import (
	"errors"
	"testing"

	"github.com/julianstephens/miaomotion/internal/models"
)

func TestAddSchedule(t *testing.T) {
	data := models.DefaultUserData()

	next, it, err := AddSchedule(data, "2024-05-10", "09:00", "11:00", "  class  ")
	if err != nil {
		t.Fatalf("AddSchedule: %v", err)
	}
	if it.ID == "" || it.Task != "class" {
		t.Errorf("item = %+v", it)
	}
	if len(next.Schedules) != 1 || len(data.Schedules) != 0 {
		t.Errorf("schedules: next=%d input=%d", len(next.Schedules), len(data.Schedules))
	}

	// overlapping and inverted ranges are accepted
	next, other, err := AddSchedule(next, "2024-05-10", "10:00", "10:30", "meeting")
	if err != nil {
		t.Fatalf("overlapping AddSchedule: %v", err)
	}
	if other.ID == it.ID {
		t.Errorf("ids collide: %s", it.ID)
	}
	if _, _, err := AddSchedule(next, "2024-05-10", "12:00", "11:00", "odd"); err != nil {
		t.Errorf("inverted AddSchedule: %v", err)
	}
}

func TestAddScheduleRejects(t *testing.T) {
	data := models.DefaultUserData()
	tests := []struct {
		name                   string
		date, start, end, task string
		want                   error
	}{
		{"empty task", "2024-05-10", "09:00", "10:00", "", ErrEmptyTask},
		{"blank task", "2024-05-10", "09:00", "10:00", "   ", ErrEmptyTask},
		{"bad date", "10/05/2024", "09:00", "10:00", "x", ErrInvalidDate},
		{"unpadded time", "2024-05-10", "9:00", "10:00", "x", ErrInvalidTime},
		{"bad end", "2024-05-10", "09:00", "25:00", "x", ErrInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _, err := AddSchedule(data, tt.date, tt.start, tt.end, tt.task)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if len(next.Schedules) != 0 {
				t.Errorf("rejected add changed schedules")
			}
		})
	}
}

func TestDeleteSchedule(t *testing.T) {
	data := models.DefaultUserData()
	data, a, _ := AddSchedule(data, "2024-05-10", "09:00", "10:00", "a")
	data, b, _ := AddSchedule(data, "2024-05-10", "11:00", "12:00", "b")

	next, removed := DeleteSchedule(data, a.ID)
	if !removed || len(next.Schedules) != 1 || next.Schedules[0].ID != b.ID {
		t.Errorf("DeleteSchedule(a) = %v, removed=%v", next.Schedules, removed)
	}
	if len(data.Schedules) != 2 {
		t.Errorf("input mutated")
	}

	same, removed := DeleteSchedule(next, "missing")
	if removed || len(same.Schedules) != 1 {
		t.Errorf("deleting unknown id should be a no-op")
	}
}

func TestSortedSchedules(t *testing.T) {
	data := models.DefaultUserData()
	data, _, _ = AddSchedule(data, "2024-05-10", "14:00", "15:00", "late")
	data, _, _ = AddSchedule(data, "2024-05-10", "08:00", "09:00", "early")
	data, _, _ = AddSchedule(data, "2024-05-11", "07:00", "08:00", "other day")

	items := SortedSchedules(data, "2024-05-10")
	if len(items) != 2 || items[0].Task != "early" || items[1].Task != "late" {
		t.Errorf("SortedSchedules = %+v", items)
	}
}

func TestAdoptAndRename(t *testing.T) {
	data := models.DefaultUserData()
	next, err := Adopt(data, " Mochi ", models.BreedCalico)
	if err != nil {
		t.Fatalf("Adopt: %v", err)
	}
	if next.Cat.Name != "Mochi" || next.Cat.Breed != models.BreedCalico {
		t.Errorf("cat = %+v", next.Cat)
	}
	if next.Cat.FoodCount != 0 || next.Cat.Weight != 4.0 || next.Cat.TotalCheckIns != 0 {
		t.Errorf("adoption touched counters: %+v", next.Cat)
	}
	if _, err := Adopt(data, "x", "sphynx"); !errors.Is(err, ErrInvalidBreed) {
		t.Errorf("err = %v, want ErrInvalidBreed", err)
	}

	if got := RenameCat(next, "").Cat.Name; got != "Xiaoju" {
		t.Errorf("empty rename = %q, want default name", got)
	}
	if got := RenameCat(next, "Tofu").Cat.Name; got != "Tofu" {
		t.Errorf("rename = %q", got)
	}
}
