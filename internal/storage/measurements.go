package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// InsertMeasurement records a body measurement and returns its ID.
func (db *DB) InsertMeasurement(ctx context.Context, row models.MeasurementRow) (uuid.UUID, error) {
	id := row.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO measurements (id, user_id, measured_at, weight_kg, body_fat_pct, muscle_kg, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		id, row.UserID, row.MeasuredAt, row.WeightKg, row.BodyFatPct, row.MuscleKg, row.Notes)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting measurement: %w", err)
	}
	return id, nil
}

// QueryMeasurements retrieves measurements in a time range, oldest first,
// ready for charting.
func (db *DB) QueryMeasurements(ctx context.Context, start, end time.Time, userID int) ([]models.MeasurementRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, measured_at, weight_kg, body_fat_pct, muscle_kg, notes
		 FROM measurements
		 WHERE measured_at >= $1 AND measured_at < $2 AND user_id = $3
		 ORDER BY measured_at ASC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying measurements: %w", err)
	}
	defer rows.Close()

	var result []models.MeasurementRow
	for rows.Next() {
		var m models.MeasurementRow
		if err := rows.Scan(&m.ID, &m.UserID, &m.MeasuredAt, &m.WeightKg,
			&m.BodyFatPct, &m.MuscleKg, &m.Notes); err != nil {
			return nil, fmt.Errorf("scanning measurement: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// DeleteMeasurement removes one measurement entry.
func (db *DB) DeleteMeasurement(ctx context.Context, measurementID uuid.UUID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM measurements WHERE id = $1 AND user_id = $2`,
		measurementID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting measurement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
