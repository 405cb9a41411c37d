package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
)

// UpsertPersonalRecords replaces a user's stored records with freshly
// computed ones. Called after every session write; records are a derived
// cache, so a full rewrite keeps them trivially consistent.
func (db *DB) UpsertPersonalRecords(ctx context.Context, userID int, records []analytics.PersonalRecord) error {
	if _, err := db.Pool.Exec(ctx,
		`DELETE FROM personal_records WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clearing personal records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	query := `INSERT INTO personal_records (user_id, exercise_name, best_weight_kg,
		best_one_rep_max, best_volume, achieved_at) VALUES `
	args := make([]any, 0, len(records)*6)
	valueStrings := make([]string, 0, len(records))

	for i, r := range records {
		base := i * 6
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		args = append(args, userID, r.ExerciseName, r.BestWeight, r.BestOneRepMax,
			r.BestVolume, r.AchievedAt)
	}

	query += strings.Join(valueStrings, ",")

	if _, err := db.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting personal records: %w", err)
	}
	return nil
}

// QueryPersonalRecords retrieves a user's records, heaviest lift first.
func (db *DB) QueryPersonalRecords(ctx context.Context, userID int) ([]models.PersonalRecordRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, exercise_name, best_weight_kg, best_one_rep_max,
		 best_volume, achieved_at, updated_at
		 FROM personal_records
		 WHERE user_id = $1
		 ORDER BY best_weight_kg DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying personal records: %w", err)
	}
	defer rows.Close()

	var result []models.PersonalRecordRow
	for rows.Next() {
		var r models.PersonalRecordRow
		if err := rows.Scan(&r.UserID, &r.ExerciseName, &r.BestWeightKg,
			&r.BestOneRepMax, &r.BestVolume, &r.AchievedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning personal record: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
