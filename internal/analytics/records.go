package analytics

import (
	"time"

	"github.com/claude/liftlog/internal/models"
)

// PersonalRecord is the all-time best for one exercise across the given
// sessions: heaviest valid set, best estimated 1RM, and best single-set
// volume. AchievedAt is the date of the heaviest set.
type PersonalRecord struct {
	ExerciseName  string     `json:"exercise_name"`
	BestWeight    float64    `json:"best_weight"`
	BestOneRepMax float64    `json:"best_one_rep_max"`
	BestVolume    float64    `json:"best_volume"`
	AchievedAt    *time.Time `json:"achieved_at,omitempty"`
}

// ComputeRecords scans all sessions and returns per-exercise records in
// first-encounter order. Only valid sets count; exercises with no valid
// sets produce no record.
func ComputeRecords(sessions []models.WorkoutSession) []PersonalRecord {
	var records []PersonalRecord
	index := make(map[string]int)

	for _, session := range sessions {
		for _, ex := range session.Exercises {
			for _, set := range ex.Sets {
				check := CheckSet(set)
				if !check.Valid() {
					continue
				}
				i, ok := index[ex.Name]
				if !ok {
					i = len(records)
					index[ex.Name] = i
					records = append(records, PersonalRecord{ExerciseName: ex.Name})
				}
				rec := &records[i]
				if check.Weight > rec.BestWeight {
					rec.BestWeight = check.Weight
					rec.AchievedAt = session.CompletedAt
				}
				if orm := OneRepMax(check.Weight, check.Reps); orm > rec.BestOneRepMax {
					rec.BestOneRepMax = orm
				}
				if vol := Volume(check.Weight, check.Reps); vol > rec.BestVolume {
					rec.BestVolume = vol
				}
			}
		}
	}
	return records
}
