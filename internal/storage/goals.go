package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// InsertGoal creates a goal and returns its ID.
func (db *DB) InsertGoal(ctx context.Context, row models.GoalRow) (uuid.UUID, error) {
	id := row.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO goals (id, user_id, title, exercise_name, metric, target_value,
		 current_value, deadline)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		id, row.UserID, row.Title, row.ExerciseName, row.Metric,
		row.TargetValue, row.CurrentValue, row.Deadline)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting goal: %w", err)
	}
	return id, nil
}

// QueryGoals lists a user's goals, open ones first.
func (db *DB) QueryGoals(ctx context.Context, userID int) ([]models.GoalRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, title, exercise_name, metric, target_value,
		 current_value, deadline, achieved_at, created_at
		 FROM goals WHERE user_id = $1
		 ORDER BY achieved_at NULLS FIRST, created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var result []models.GoalRow
	for rows.Next() {
		var g models.GoalRow
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.ExerciseName, &g.Metric,
			&g.TargetValue, &g.CurrentValue, &g.Deadline, &g.AchievedAt, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// UpdateGoalProgress sets a goal's current value, marking it achieved when
// the target is reached for the first time.
func (db *DB) UpdateGoalProgress(ctx context.Context, goalID uuid.UUID, userID int, currentValue float64) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE goals SET current_value = $3,
		 achieved_at = CASE WHEN achieved_at IS NULL AND $3 >= target_value THEN NOW()
		                    ELSE achieved_at END
		 WHERE id = $1 AND user_id = $2`,
		goalID, userID, currentValue)
	if err != nil {
		return fmt.Errorf("updating goal %s: %w", goalID, err)
	}
	return nil
}

// DeleteGoal removes a goal. Returns true if a row was deleted.
func (db *DB) DeleteGoal(ctx context.Context, goalID uuid.UUID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM goals WHERE id = $1 AND user_id = $2`,
		goalID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting goal: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
