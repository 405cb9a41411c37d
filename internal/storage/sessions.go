package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// InsertSession inserts a workout session row. Returns true if inserted,
// false if the ID already exists (re-imports are idempotent).
func (db *DB) InsertSession(ctx context.Context, row models.SessionRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, program_name, start_time, end_time, completed_at,
		 duration_sec, exercises)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.UserID, row.ProgramName, row.StartTime, row.EndTime, row.CompletedAt,
		row.DurationSec, row.Exercises)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QuerySessions retrieves sessions in a time range, newest first. Sessions
// with no completion timestamp sort last so they are never silently lost.
// An empty programFilter (or "all") matches every program.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time, userID int, programFilter string) ([]models.SessionRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, program_name, start_time, end_time, completed_at,
		 duration_sec, exercises, created_at
		 FROM sessions
		 WHERE user_id = $1
		   AND (completed_at IS NULL OR (completed_at >= $2 AND completed_at < $3))
		   AND ($4 = '' OR $4 = 'all' OR program_name = $4)
		 ORDER BY completed_at DESC NULLS LAST`,
		userID, start, end, programFilter)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.SessionRow
	for rows.Next() {
		var s models.SessionRow
		if err := rows.Scan(&s.ID, &s.UserID, &s.ProgramName, &s.StartTime, &s.EndTime,
			&s.CompletedAt, &s.DurationSec, &s.Exercises, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetSession retrieves a single session by ID.
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID, userID int) (*models.SessionRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, program_name, start_time, end_time, completed_at,
		 duration_sec, exercises, created_at
		 FROM sessions
		 WHERE id = $1 AND user_id = $2`,
		sessionID, userID)

	var s models.SessionRow
	err := row.Scan(&s.ID, &s.UserID, &s.ProgramName, &s.StartTime, &s.EndTime,
		&s.CompletedAt, &s.DurationSec, &s.Exercises, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}

// DeleteSession removes a session. Returns true if a row was deleted.
func (db *DB) DeleteSession(ctx context.Context, sessionID uuid.UUID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM sessions WHERE id = $1 AND user_id = $2`,
		sessionID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListProgramNames returns the distinct program names a user has trained,
// for filter dropdowns.
func (db *DB) ListProgramNames(ctx context.Context, userID int) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT program_name FROM sessions
		 WHERE user_id = $1 AND program_name <> ''
		 ORDER BY program_name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying program names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning program name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
