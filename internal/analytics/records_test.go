package analytics

import (
	"math"
	"testing"

	"github.com/claude/liftlog/internal/models"
)

// TestComputeRecords verifies best weight, best 1RM, and best volume can
// come from different sets of the same exercise.
func TestComputeRecords(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("", ts("2024-01-05"), exercise("Bench Press",
			set(100, 3, true), // heaviest: 1RM 110, volume 300
			set(90, 12, true), // 1RM 126, volume 1080
		)),
		session("", ts("2024-02-05"), exercise("Bench Press",
			set(95, 10, true), // 1RM 126.67, volume 950
		)),
	}

	records := ComputeRecords(sessions)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.BestWeight != 100 {
		t.Errorf("BestWeight = %v, want 100", rec.BestWeight)
	}
	want1RM := 95 * (1 + 10.0/30)
	if math.Abs(rec.BestOneRepMax-want1RM) > 1e-9 {
		t.Errorf("BestOneRepMax = %v, want %v", rec.BestOneRepMax, want1RM)
	}
	if rec.BestVolume != 1080 {
		t.Errorf("BestVolume = %v, want 1080", rec.BestVolume)
	}
	if rec.AchievedAt == nil || DateKey(*rec.AchievedAt) != "2024-01-05" {
		t.Errorf("AchievedAt = %v, want 2024-01-05", rec.AchievedAt)
	}
}

// TestComputeRecordsIgnoresInvalidSets verifies incomplete sets never set
// records, however heavy.
func TestComputeRecordsIgnoresInvalidSets(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("", ts("2024-01-05"), exercise("Squat",
			set(500, 1, false),
			set(140, 5, true),
		)),
	}

	records := ComputeRecords(sessions)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].BestWeight != 140 {
		t.Errorf("BestWeight = %v, want 140", records[0].BestWeight)
	}
}

// TestComputeRecordsOrder verifies first-encounter ordering across sessions.
func TestComputeRecordsOrder(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("", ts("2024-01-05"),
			exercise("Deadlift", set(180, 3, true)),
			exercise("Row", set(70, 8, true)),
		),
		session("", ts("2024-01-08"),
			exercise("Row", set(72.5, 8, true)),
		),
	}

	records := ComputeRecords(sessions)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].ExerciseName != "Deadlift" || records[1].ExerciseName != "Row" {
		t.Errorf("order = [%q, %q], want [Deadlift, Row]",
			records[0].ExerciseName, records[1].ExerciseName)
	}
	if records[1].BestWeight != 72.5 {
		t.Errorf("Row BestWeight = %v, want 72.5", records[1].BestWeight)
	}
}

// TestComputeRecordsEmpty verifies empty input yields no records.
func TestComputeRecordsEmpty(t *testing.T) {
	if got := ComputeRecords(nil); len(got) != 0 {
		t.Errorf("ComputeRecords(nil) = %+v, want empty", got)
	}
}
