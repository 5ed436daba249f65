package session

import (
	"time"

	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/engine"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/validation"
)

// FreeTime derives the free slots for date from the current schedules.
func (s *Session) FreeTime(date string) engine.FreeTime {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.FreeSlots(s.data.Schedules, date)
}

// FreeTimeToday is FreeTime for the current date.
func (s *Session) FreeTimeToday() engine.FreeTime {
	return s.FreeTime(s.Today())
}

// Schedules returns the items on date ordered by start time.
func (s *Session) Schedules(date string) []models.ScheduleItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.SortedSchedules(s.data, date)
}

// Weather returns the last resolved weather reading.
func (s *Session) Weather() models.WeatherData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weather
}

// Recommendations suggests activities for the current temperature.
func (s *Session) Recommendations() []models.SportType {
	return engine.Recommend(s.Weather().Temp)
}

// Month builds the calendar grid for year/month with today highlighted.
func (s *Session) Month(year int, month time.Month) engine.MonthView {
	today := s.Today()
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Month(s.data, year, month, today)
}

// CurrentMonth is the calendar grid for the month containing today.
func (s *Session) CurrentMonth() engine.MonthView {
	now := s.now().In(s.loc)
	return s.Month(now.Year(), now.Month())
}

// RecentCheckIns lists the latest check-ins shown under the calendar.
func (s *Session) RecentCheckIns() []models.CheckIn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.RecentCheckIns(s.data, constants.RecentCheckInCount)
}

func (s *Session) Stats() engine.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.ComputeStats(s.data)
}

// Validate reports inconsistencies in the current aggregate.
func (s *Session) Validate() validation.ValidationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return validation.New().ValidateUserData(s.data)
}
