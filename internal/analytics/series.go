package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
)

const (
	// maxChartSeries caps how many exercises a chart shows at once.
	maxChartSeries = 4
	// maxChartPoints caps how many sessions each series shows.
	maxChartPoints = 10
	// minChartPoints is the floor below which a series shows no trend.
	minChartPoints = 2
)

// SeriesPoint is one charted observation: the best completed set of one
// session for one exercise.
type SeriesPoint struct {
	Date     string    `json:"date"` // short label, e.g. "Jan 2"
	Weight   float64   `json:"weight"`
	FullDate time.Time `json:"full_date"`
}

// ExerciseSeries is one chart line.
type ExerciseSeries struct {
	Name   string        `json:"name"`
	Points []SeriesPoint `json:"points"`
}

// BuildChartSeries derives per-exercise progression lines: the max-weight
// valid set per (exercise, session), sorted chronologically. Exercises with
// fewer than two points are dropped, the rest are ranked by point count
// (descending, stable on first encounter), and at most four series with
// their ten most recent points are returned. Sessions without a completion
// timestamp cannot be placed on the time axis and contribute no points.
// The input slice is never mutated.
func BuildChartSeries(sessions []models.WorkoutSession, programFilter, exerciseFilter string) []ExerciseSeries {
	var series []ExerciseSeries
	index := make(map[string]int)

	for _, session := range sessions {
		if !matchesFilter(session.ProgramName, programFilter) {
			continue
		}
		if session.CompletedAt == nil {
			continue
		}
		for _, ex := range session.Exercises {
			if !matchesFilter(ex.Name, exerciseFilter) {
				continue
			}
			best := 0.0
			for _, set := range ex.Sets {
				if check := CheckSet(set); check.Valid() && check.Weight > best {
					best = check.Weight
				}
			}
			if best == 0 {
				continue
			}
			i, ok := index[ex.Name]
			if !ok {
				i = len(series)
				index[ex.Name] = i
				series = append(series, ExerciseSeries{Name: ex.Name})
			}
			series[i].Points = append(series[i].Points, SeriesPoint{
				Date:     session.CompletedAt.Format("Jan 2"),
				Weight:   best,
				FullDate: *session.CompletedAt,
			})
		}
	}

	// Sort each series chronologically, then drop the ones too short to
	// show a trend.
	kept := series[:0:0]
	for _, s := range series {
		sort.SliceStable(s.Points, func(a, b int) bool {
			return s.Points[a].FullDate.Before(s.Points[b].FullDate)
		})
		if len(s.Points) >= minChartPoints {
			kept = append(kept, s)
		}
	}

	// Rank by point count; SliceStable keeps first-encounter order on ties.
	sort.SliceStable(kept, func(a, b int) bool {
		return len(kept[a].Points) > len(kept[b].Points)
	})
	if len(kept) > maxChartSeries {
		kept = kept[:maxChartSeries]
	}
	for i := range kept {
		if n := len(kept[i].Points); n > maxChartPoints {
			kept[i].Points = kept[i].Points[n-maxChartPoints:]
		}
	}
	return kept
}
