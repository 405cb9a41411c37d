package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const exportJSON = `[
	{
		"id": "550e8400-e29b-41d4-a716-446655440000",
		"programName": "Push",
		"completedAt": "2024-03-01T18:00:00Z",
		"duration": 3600,
		"exercises": [
			{
				"name": "Bench Press",
				"sets": [
					{"weight": 100, "reps": 5, "completed": true},
					{"weight": "80", "reps": "8", "completed": true},
					{"weight": 60, "reps": 10, "completed": false}
				]
			}
		]
	},
	{
		"programName": "Pull",
		"completedAt": "2024-03-02T18:00:00Z",
		"exercises": [
			{"name": "Deadlift", "sets": [{"weight": 140, "reps": 0, "completed": true}]}
		]
	}
]`

// TestImportDryRun verifies a dry-run import counts sessions and sets
// without touching the database.
func TestImportDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "export.json", exportJSON)

	imp := New(nil, discardLogger(), 1, true)
	stats, err := imp.Import(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1", stats.FilesProcessed)
	}
	if stats.SessionsReceived != 2 || stats.SessionsInserted != 2 {
		t.Errorf("sessions = %+v", stats)
	}
	if stats.SetsReceived != 4 {
		t.Errorf("SetsReceived = %d, want 4", stats.SetsReceived)
	}
	// Skipped: the not-completed set and the zero-rep set.
	if stats.SetsSkipped != 2 {
		t.Errorf("SetsSkipped = %d, want 2", stats.SetsSkipped)
	}
}

// TestImportMalformedFile verifies unparseable files are counted and
// skipped rather than aborting the import.
func TestImportMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", exportJSON)
	writeFile(t, dir, "bad.json", `{not json`)

	imp := New(nil, discardLogger(), 1, true)
	stats, err := imp.Import(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesErrored != 1 {
		t.Errorf("FilesErrored = %d, want 1", stats.FilesErrored)
	}
	if stats.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1", stats.FilesProcessed)
	}
}

// TestImportMissingPath verifies a nonexistent path is an error.
func TestImportMissingPath(t *testing.T) {
	imp := New(nil, discardLogger(), 1, true)
	if _, err := imp.Import(context.Background(), "/does/not/exist"); err == nil {
		t.Fatal("expected error for missing path")
	}
}

// TestImportEmptyDir verifies a directory with no JSON files is an error.
func TestImportEmptyDir(t *testing.T) {
	imp := New(nil, discardLogger(), 1, true)
	if _, err := imp.Import(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

// TestRowFromDoc verifies document → row conversion and ID handling.
func TestRowFromDoc(t *testing.T) {
	id := uuid.New()
	row, err := rowFromDoc(&models.WorkoutSession{ID: id.String(), ProgramName: "Legs"}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.ID != id || row.UserID != 3 || row.ProgramName != "Legs" {
		t.Errorf("row = %+v", row)
	}

	row, err = rowFromDoc(&models.WorkoutSession{}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.ID == uuid.Nil {
		t.Error("expected generated UUID for missing ID")
	}

	if _, err := rowFromDoc(&models.WorkoutSession{ID: "nope"}, 3); err == nil {
		t.Error("expected error for malformed ID")
	}
}

// TestRejectedSessionContinues verifies a malformed session ID rejects that
// session but keeps importing the rest.
func TestRejectedSessionContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "export.json", `[
		{"id": "broken", "exercises": []},
		{"programName": "Push", "exercises": []}
	]`)

	imp := New(nil, discardLogger(), 1, true)
	stats, err := imp.Import(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.SessionsRejected != 1 {
		t.Errorf("SessionsRejected = %d, want 1", stats.SessionsRejected)
	}
	if stats.SessionsInserted != 1 {
		t.Errorf("SessionsInserted = %d, want 1", stats.SessionsInserted)
	}
}
