package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// FilterAll is the sentinel meaning "no filter". The empty string is
// treated the same way so API query parameters can simply be omitted.
const FilterAll = "all"

// ProgressPoint is one aggregated observation for an exercise.
type ProgressPoint struct {
	Date      *time.Time `json:"date,omitempty"`
	Weight    float64    `json:"weight"`
	Reps      int        `json:"reps"`
	OneRepMax float64    `json:"one_rep_max"`
	Volume    float64    `json:"volume"`
}

// ExerciseProgress holds the chronological progress points for one exercise.
type ExerciseProgress struct {
	Name   string          `json:"name"`
	Points []ProgressPoint `json:"points"`
}

// ByName returns the progress entry for an exercise, or nil.
func ByName(progress []ExerciseProgress, name string) *ExerciseProgress {
	for i := range progress {
		if progress[i].Name == name {
			return &progress[i]
		}
	}
	return nil
}

// matchesFilter reports whether a value passes an exact-match filter.
func matchesFilter(value, filter string) bool {
	return filter == "" || filter == FilterAll || value == filter
}

// AggregateProgress groups every valid completed set by exercise name and
// derives per-set metrics. Exercises appear in first-encounter order over
// the input; within each exercise, points are sorted chronologically.
// Ties, and dateless points (which sort first), stay stable in encounter
// order. The input slice is never mutated; empty input yields empty output.
func AggregateProgress(sessions []models.WorkoutSession, programFilter, exerciseFilter string) []ExerciseProgress {
	var result []ExerciseProgress
	index := make(map[string]int)

	for _, session := range sessions {
		if !matchesFilter(session.ProgramName, programFilter) {
			continue
		}
		for _, ex := range session.Exercises {
			if !matchesFilter(ex.Name, exerciseFilter) {
				continue
			}
			for _, set := range ex.Sets {
				check := CheckSet(set)
				if !check.Valid() {
					continue
				}
				i, ok := index[ex.Name]
				if !ok {
					i = len(result)
					index[ex.Name] = i
					result = append(result, ExerciseProgress{Name: ex.Name})
				}
				result[i].Points = append(result[i].Points, ProgressPoint{
					Date:      session.CompletedAt,
					Weight:    check.Weight,
					Reps:      check.Reps,
					OneRepMax: OneRepMax(check.Weight, check.Reps),
					Volume:    Volume(check.Weight, check.Reps),
				})
			}
		}
	}

	for i := range result {
		points := result[i].Points
		sort.SliceStable(points, func(a, b int) bool {
			return pointBefore(points[a].Date, points[b].Date)
		})
	}
	return result
}

// pointBefore orders timestamps with nil (unknown date) first.
func pointBefore(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}
