package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SessionRow is the Postgres representation of a workout session. The
// exercise payload is kept as raw JSONB so the analytics loader can decode
// it defensively.
type SessionRow struct {
	ID          uuid.UUID       `json:"id"`
	UserID      int             `json:"user_id"`
	ProgramName string          `json:"program_name"`
	StartTime   *time.Time      `json:"start_time"`
	EndTime     *time.Time      `json:"end_time"`
	CompletedAt *time.Time      `json:"completed_at"`
	DurationSec int             `json:"duration_sec"`
	Exercises   json.RawMessage `json:"exercises"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProgramRow is a stored training program.
type ProgramRow struct {
	ID        uuid.UUID `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// GoalRow is a user-defined training goal (e.g. "Bench Press 1RM 120 kg").
type GoalRow struct {
	ID           uuid.UUID  `json:"id"`
	UserID       int        `json:"user_id"`
	Title        string     `json:"title"`
	ExerciseName string     `json:"exercise_name"`
	Metric       string     `json:"metric"` // weight | one_rep_max | volume
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	AchievedAt   *time.Time `json:"achieved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// MeasurementRow is one body measurement entry.
type MeasurementRow struct {
	ID         uuid.UUID `json:"id"`
	UserID     int       `json:"user_id"`
	MeasuredAt time.Time `json:"measured_at"`
	WeightKg   *float64  `json:"weight_kg,omitempty"`
	BodyFatPct *float64  `json:"body_fat_pct,omitempty"`
	MuscleKg   *float64  `json:"muscle_kg,omitempty"`
	Notes      string    `json:"notes"`
}

// PersonalRecordRow is the persisted per-exercise best, recomputed whenever
// sessions are written.
type PersonalRecordRow struct {
	UserID        int        `json:"user_id"`
	ExerciseName  string     `json:"exercise_name"`
	BestWeightKg  float64    `json:"best_weight_kg"`
	BestOneRepMax float64    `json:"best_one_rep_max"`
	BestVolume    float64    `json:"best_volume"`
	AchievedAt    *time.Time `json:"achieved_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
