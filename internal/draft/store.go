// Package draft persists the in-progress workout locally so a crash or a
// closed tab never loses an edit session.
package draft

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/liftlog/internal/models"
	_ "modernc.org/sqlite"
)

// Store keeps one draft per user in a local SQLite database.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (or creates) the draft database at dir/drafts.db.
func Open(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating draft dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "drafts.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening draft db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS drafts (
		user_id    INTEGER PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating drafts table: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Save serializes the draft session and stores it under the user's key.
func (s *Store) Save(userID int, session *models.WorkoutSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("serializing draft: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO drafts (user_id, payload, updated_at) VALUES (?, ?, ?)`,
		userID, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// Load returns the stored draft for a user, or nil when none exists. A
// corrupted payload is logged and treated as absence, never an error: the
// loading path must not fail on a bad draft.
func (s *Store) Load(userID int) *models.WorkoutSession {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM drafts WHERE user_id = ?`, userID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		if s.log != nil {
			s.log.Warn("reading draft failed", "user_id", userID, "error", err)
		}
		return nil
	}

	var session models.WorkoutSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		if s.log != nil {
			s.log.Warn("discarding corrupted draft", "user_id", userID, "error", err)
		}
		return nil
	}
	return &session
}

// Clear removes the user's draft.
func (s *Store) Clear(userID int) error {
	if _, err := s.db.Exec(`DELETE FROM drafts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
