package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// InsertProgram creates a program and returns its ID.
func (db *DB) InsertProgram(ctx context.Context, row models.ProgramRow) (uuid.UUID, error) {
	id := row.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO programs (id, user_id, name, notes) VALUES ($1,$2,$3,$4)`,
		id, row.UserID, row.Name, row.Notes)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting program: %w", err)
	}
	return id, nil
}

// QueryPrograms lists a user's programs, newest first.
func (db *DB) QueryPrograms(ctx context.Context, userID int) ([]models.ProgramRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, notes, created_at
		 FROM programs WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var result []models.ProgramRow
	for rows.Next() {
		var p models.ProgramRow
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// DeleteProgram removes a program. Sessions keep their program_name label;
// deleting a program never touches history.
func (db *DB) DeleteProgram(ctx context.Context, programID uuid.UUID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM programs WHERE id = $1 AND user_id = $2`,
		programID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting program: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
