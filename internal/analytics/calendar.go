package analytics

import (
	"time"

	"github.com/claude/liftlog/internal/models"
)

const (
	calendarWeeks = 6
	daysPerWeek   = 7
)

// CalendarCell is one position in the 6x7 training calendar grid.
type CalendarCell struct {
	Day        int       `json:"day"`
	Date       time.Time `json:"date"`
	HasWorkout bool      `json:"has_workout"`
	InMonth    bool      `json:"in_month"`
	IsToday    bool      `json:"is_today"`
}

// DateKey formats a time as the YYYY-MM-DD key used for workout-day lookup.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WorkoutDates collects the completion dates of the given sessions as a
// DateKey set. Sessions without a completion timestamp are ignored.
func WorkoutDates(sessions []models.WorkoutSession) map[string]bool {
	dates := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		if s.CompletedAt != nil {
			dates[DateKey(*s.CompletedAt)] = true
		}
	}
	return dates
}

// BuildGrid lays a month out on a fixed 6-week grid starting from the
// Monday on or before the first of the month. Every invocation yields
// exactly 42 cells. workoutDates holds DateKey strings of days that had a
// session; today marks the IsToday cell. Out-of-range month values are
// normalized the way time.Date normalizes them (month 13 of 2024 is
// January 2025); they never panic.
func BuildGrid(month time.Month, year int, workoutDates map[string]bool, today time.Time) [][]CalendarCell {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	year, month = firstDay.Year(), firstDay.Month()

	offset := int(firstDay.Weekday()) - 1
	if firstDay.Weekday() == time.Sunday {
		offset = 6
	}
	start := firstDay.AddDate(0, 0, -offset)

	todayKey := DateKey(today)
	grid := make([][]CalendarCell, calendarWeeks)
	for week := 0; week < calendarWeeks; week++ {
		grid[week] = make([]CalendarCell, daysPerWeek)
		for day := 0; day < daysPerWeek; day++ {
			date := start.AddDate(0, 0, week*daysPerWeek+day)
			key := DateKey(date)
			grid[week][day] = CalendarCell{
				Day:        date.Day(),
				Date:       date,
				HasWorkout: workoutDates[key],
				InMonth:    date.Month() == month && date.Year() == year,
				IsToday:    key == todayKey,
			}
		}
	}
	return grid
}

// PreviousMonth steps back one month, wrapping the year at January.
func PreviousMonth(month time.Month, year int) (time.Month, int) {
	if month == time.January {
		return time.December, year - 1
	}
	return month - 1, year
}

// NextMonth steps forward one month, wrapping the year at December.
func NextMonth(month time.Month, year int) (time.Month, int) {
	if month == time.December {
		return time.January, year + 1
	}
	return month + 1, year
}
