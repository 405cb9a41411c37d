package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

func ts(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func session(program string, completedAt *time.Time, exercises ...models.Exercise) models.WorkoutSession {
	return models.WorkoutSession{
		ProgramName: program,
		CompletedAt: completedAt,
		Exercises:   exercises,
	}
}

func exercise(name string, sets ...models.Set) models.Exercise {
	return models.Exercise{Name: name, Sets: sets}
}

func set(weight float64, reps int, completed bool) models.Set {
	return models.Set{Weight: models.FlexFloat(weight), Reps: models.FlexInt(reps), Completed: completed}
}

// TestAggregateProgressDerivedMetrics verifies the Epley 1RM estimate and
// the volume computation for a known set.
func TestAggregateProgressDerivedMetrics(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("Push", ts("2024-03-01"), exercise("Bench Press", set(100, 10, true))),
	}

	progress := AggregateProgress(sessions, FilterAll, FilterAll)
	if len(progress) != 1 {
		t.Fatalf("exercises = %d, want 1", len(progress))
	}
	p := progress[0].Points[0]

	want1RM := 100 * (1 + 10.0/30)
	if math.Abs(p.OneRepMax-want1RM) > 1e-9 {
		t.Errorf("OneRepMax = %v, want %v", p.OneRepMax, want1RM)
	}
	if p.Volume != 1000 {
		t.Errorf("Volume = %v, want 1000", p.Volume)
	}
}

// TestAggregateProgressSkipsInvalidSets verifies that incomplete sets and
// sets with zero weight or reps never contribute points.
func TestAggregateProgressSkipsInvalidSets(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("", ts("2024-03-01"), exercise("Squat",
			set(140, 5, false), // not completed
			set(0, 5, true),    // zero weight
			set(140, 0, true),  // zero reps
		)),
	}

	progress := AggregateProgress(sessions, FilterAll, FilterAll)
	if len(progress) != 0 {
		t.Fatalf("progress = %+v, want empty", progress)
	}
}

// TestAggregateProgressEmptyInput verifies empty input yields an empty
// result without error.
func TestAggregateProgressEmptyInput(t *testing.T) {
	if got := AggregateProgress(nil, FilterAll, FilterAll); len(got) != 0 {
		t.Errorf("AggregateProgress(nil) = %+v, want empty", got)
	}
}

// TestAggregateProgressFilters verifies exact-match program and exercise
// filtering, including the zero-match case.
func TestAggregateProgressFilters(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("Push", ts("2024-03-01"), exercise("Bench Press", set(100, 5, true))),
		session("Pull", ts("2024-03-02"), exercise("Deadlift", set(180, 3, true))),
	}

	tests := []struct {
		name           string
		program        string
		exercise       string
		wantExercises  []string
	}{
		{"all", FilterAll, FilterAll, []string{"Bench Press", "Deadlift"}},
		{"empty means all", "", "", []string{"Bench Press", "Deadlift"}},
		{"program filter", "Push", FilterAll, []string{"Bench Press"}},
		{"exercise filter", FilterAll, "Deadlift", []string{"Deadlift"}},
		{"no matching program", "Legs", FilterAll, nil},
		{"case sensitive", FilterAll, "bench press", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := AggregateProgress(sessions, tt.program, tt.exercise)
			if len(progress) != len(tt.wantExercises) {
				t.Fatalf("got %d exercises, want %d", len(progress), len(tt.wantExercises))
			}
			for i, want := range tt.wantExercises {
				if progress[i].Name != want {
					t.Errorf("progress[%d].Name = %q, want %q", i, progress[i].Name, want)
				}
			}
		})
	}
}

// TestAggregateProgressOrdering verifies first-encounter exercise order and
// chronological point order within an exercise even when input sessions
// arrive out of order.
func TestAggregateProgressOrdering(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("", ts("2024-03-10"), exercise("Bench Press", set(105, 5, true))),
		session("", ts("2024-03-01"),
			exercise("Squat", set(140, 5, true)),
			exercise("Bench Press", set(100, 5, true)),
		),
	}

	progress := AggregateProgress(sessions, FilterAll, FilterAll)
	if len(progress) != 2 {
		t.Fatalf("exercises = %d, want 2", len(progress))
	}
	if progress[0].Name != "Bench Press" || progress[1].Name != "Squat" {
		t.Errorf("exercise order = [%q, %q], want [Bench Press, Squat]",
			progress[0].Name, progress[1].Name)
	}

	bench := progress[0].Points
	if len(bench) != 2 {
		t.Fatalf("bench points = %d, want 2", len(bench))
	}
	if bench[0].Weight != 100 || bench[1].Weight != 105 {
		t.Errorf("points not chronological: weights = [%v, %v]", bench[0].Weight, bench[1].Weight)
	}
}

// TestAggregateProgressNilDates verifies sessions with missing completion
// timestamps still contribute points, sorted before dated ones.
func TestAggregateProgressNilDates(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("", ts("2024-03-01"), exercise("Row", set(60, 8, true))),
		session("", nil, exercise("Row", set(55, 8, true))),
	}

	progress := AggregateProgress(sessions, FilterAll, FilterAll)
	if len(progress) != 1 {
		t.Fatalf("exercises = %d, want 1", len(progress))
	}
	points := progress[0].Points
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if points[0].Date != nil {
		t.Errorf("dateless point should sort first, got date %v", points[0].Date)
	}
	if points[1].Weight != 60 {
		t.Errorf("points[1].Weight = %v, want 60", points[1].Weight)
	}
}

// TestAggregateProgressDoesNotMutateInput verifies the caller's slice is
// left untouched.
func TestAggregateProgressDoesNotMutateInput(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("", ts("2024-03-10"), exercise("Bench Press", set(105, 5, true))),
		session("", ts("2024-03-01"), exercise("Bench Press", set(100, 5, true))),
	}

	AggregateProgress(sessions, FilterAll, FilterAll)

	if !sessions[0].CompletedAt.After(*sessions[1].CompletedAt) {
		t.Error("input slice was reordered")
	}
}

// TestByName verifies the lookup helper.
func TestByName(t *testing.T) {
	progress := []ExerciseProgress{{Name: "Squat"}, {Name: "Bench Press"}}
	if got := ByName(progress, "Bench Press"); got == nil || got.Name != "Bench Press" {
		t.Errorf("ByName(Bench Press) = %v", got)
	}
	if got := ByName(progress, "Deadlift"); got != nil {
		t.Errorf("ByName(Deadlift) = %v, want nil", got)
	}
}
