package models

import (
	"encoding/json"
	"testing"
)

// TestWorkoutSessionDecode verifies a well-formed document decodes with all
// timestamps parsed.
func TestWorkoutSessionDecode(t *testing.T) {
	doc := `{
		"id": "abc123",
		"programName": "Push Day",
		"startTime": "2024-03-01T17:00:00Z",
		"endTime": "2024-03-01T18:05:00Z",
		"completedAt": "2024-03-01T18:05:00Z",
		"duration": 3900,
		"exercises": [
			{"name": "Bench Press", "sets": [
				{"weight": 100, "reps": 8, "completed": true}
			]}
		]
	}`

	var s WorkoutSession
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if s.ID != "abc123" || s.ProgramName != "Push Day" || s.DurationSec != 3900 {
		t.Errorf("header = %+v", s)
	}
	if s.CompletedAt == nil || s.CompletedAt.Hour() != 18 {
		t.Errorf("completedAt = %v", s.CompletedAt)
	}
}

// TestWorkoutSessionDecodeMalformedTimestamps verifies garbage, null, and
// absent timestamps all degrade to nil instead of failing.
func TestWorkoutSessionDecodeMalformedTimestamps(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"garbage string", `{"id":"x","completedAt":"not-a-date"}`},
		{"null", `{"id":"x","completedAt":null}`},
		{"absent", `{"id":"x"}`},
		{"empty string", `{"id":"x","completedAt":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s WorkoutSession
			if err := json.Unmarshal([]byte(tt.doc), &s); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if s.CompletedAt != nil {
				t.Errorf("completedAt = %v, want nil", s.CompletedAt)
			}
		})
	}
}

// TestWorkoutSessionDecodeEpochMillis verifies unix-milli timestamps parse.
func TestWorkoutSessionDecodeEpochMillis(t *testing.T) {
	var s WorkoutSession
	doc := `{"id":"x","completedAt":1709316000000}`
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if s.CompletedAt == nil {
		t.Fatal("completedAt = nil, want parsed")
	}
	if s.CompletedAt.UTC().Year() != 2024 {
		t.Errorf("completedAt = %v, want year 2024", s.CompletedAt)
	}
}

// TestFlexNumericDecoding verifies number and string shapes for weight and
// reps, with garbage degrading to zero.
func TestFlexNumericDecoding(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantWeight float64
		wantReps   int
	}{
		{"numbers", `{"weight": 62.5, "reps": 8, "completed": true}`, 62.5, 8},
		{"strings", `{"weight": "62.5", "reps": "8", "completed": true}`, 62.5, 8},
		{"fractional reps string", `{"weight": "100", "reps": "8.0", "completed": true}`, 100, 8},
		{"garbage", `{"weight": "heavy", "reps": "many", "completed": true}`, 0, 0},
		{"null", `{"weight": null, "reps": null, "completed": true}`, 0, 0},
		{"absent", `{"completed": true}`, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Set
			if err := json.Unmarshal([]byte(tt.doc), &s); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if float64(s.Weight) != tt.wantWeight {
				t.Errorf("weight = %v, want %v", float64(s.Weight), tt.wantWeight)
			}
			if int(s.Reps) != tt.wantReps {
				t.Errorf("reps = %v, want %v", int(s.Reps), tt.wantReps)
			}
		})
	}
}
