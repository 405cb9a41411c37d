package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesErrored   int

	SessionsReceived   int
	SessionsInserted   int
	SessionsDuplicated int
	SessionsRejected   int

	SetsReceived int
	SetsSkipped  int
}

// Importer reads JSON session exports and inserts them into the DB.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	userID int
	dryRun bool
	stats  Stats
}

// New creates a new Importer. All imported sessions are owned by userID.
func New(db *storage.DB, log *slog.Logger, userID int, dryRun bool) *Importer {
	return &Importer{db: db, log: log, userID: userID, dryRun: dryRun}
}

// Import processes the given path, which is either a single JSON export file
// or a directory of them. Each file holds an array of session documents.
// After all sessions are inserted, personal records are recomputed and an
// import log entry is written.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	files, err := collectFiles(path)
	if err != nil {
		return &imp.stats, err
	}
	if len(files) == 0 {
		return &imp.stats, fmt.Errorf("no JSON files found under %s", path)
	}

	var logID int64
	started := time.Now()
	if !imp.dryRun {
		logID, err = imp.db.InsertImportLog(ctx, storage.ImportLog{
			UserID: imp.userID,
			Source: path,
			Status: "running",
		})
		if err != nil {
			return &imp.stats, err
		}
	}

	importErr := imp.importFiles(ctx, files)

	if !imp.dryRun && importErr == nil {
		importErr = imp.refreshRecords(ctx)
	}

	if !imp.dryRun {
		durationMs := int(time.Since(started).Milliseconds())
		entry := storage.ImportLog{
			Status:           "success",
			SessionsReceived: imp.stats.SessionsReceived,
			SessionsInserted: imp.stats.SessionsInserted,
			SetsReceived:     imp.stats.SetsReceived,
			SetsSkipped:      imp.stats.SetsSkipped,
			DurationMs:       &durationMs,
		}
		if importErr != nil {
			msg := importErr.Error()
			entry.Status = "error"
			entry.ErrorMessage = &msg
		}
		if err := imp.db.UpdateImportLog(ctx, logID, entry); err != nil {
			imp.log.Error("updating import log", "id", logID, "error", err)
		}
	}

	return &imp.stats, importErr
}

// collectFiles resolves path to the list of JSON files to process.
func collectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("statting %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := filepath.Glob(filepath.Join(path, "*.json"))
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (imp *Importer) importFiles(ctx context.Context, files []string) error {
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			imp.log.Warn("read failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		var docs []models.WorkoutSession
		if err := json.Unmarshal(data, &docs); err != nil {
			imp.log.Warn("parse failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		imp.stats.FilesProcessed++

		for i := range docs {
			if err := imp.importSession(ctx, &docs[i]); err != nil {
				return fmt.Errorf("importing session from %s: %w", filepath.Base(f), err)
			}
		}
	}
	return nil
}

// importSession converts one document and inserts it. Duplicate IDs are
// counted, not fatal.
func (imp *Importer) importSession(ctx context.Context, doc *models.WorkoutSession) error {
	imp.stats.SessionsReceived++
	imp.countSets(doc)

	row, err := rowFromDoc(doc, imp.userID)
	if err != nil {
		imp.log.Warn("rejecting session", "id", doc.ID, "error", err)
		imp.stats.SessionsRejected++
		return nil
	}

	if imp.dryRun {
		imp.stats.SessionsInserted++
		return nil
	}

	inserted, err := imp.db.InsertSession(ctx, row)
	if err != nil {
		return err
	}
	if inserted {
		imp.stats.SessionsInserted++
	} else {
		imp.stats.SessionsDuplicated++
	}
	return nil
}

func (imp *Importer) countSets(doc *models.WorkoutSession) {
	for _, ex := range doc.Exercises {
		for _, s := range ex.Sets {
			imp.stats.SetsReceived++
			if !analytics.CheckSet(s).Valid() {
				imp.stats.SetsSkipped++
			}
		}
	}
}

// rowFromDoc converts a session document to its storage row. A missing ID
// gets a fresh UUID; a malformed one is an error.
func rowFromDoc(doc *models.WorkoutSession, userID int) (models.SessionRow, error) {
	id := uuid.New()
	if doc.ID != "" {
		parsed, err := uuid.Parse(doc.ID)
		if err != nil {
			return models.SessionRow{}, fmt.Errorf("parsing session ID %q: %w", doc.ID, err)
		}
		id = parsed
	}

	exercises, err := json.Marshal(doc.Exercises)
	if err != nil {
		return models.SessionRow{}, fmt.Errorf("encoding exercises: %w", err)
	}

	return models.SessionRow{
		ID:          id,
		UserID:      userID,
		ProgramName: doc.ProgramName,
		StartTime:   doc.StartTime,
		EndTime:     doc.EndTime,
		CompletedAt: doc.CompletedAt,
		DurationSec: doc.DurationSec,
		Exercises:   exercises,
	}, nil
}

// refreshRecords recomputes the personal records cache from all stored
// sessions after an import.
func (imp *Importer) refreshRecords(ctx context.Context) error {
	rows, err := imp.db.QuerySessions(ctx, time.Unix(0, 0), time.Now().AddDate(1, 0, 0), imp.userID, "")
	if err != nil {
		return fmt.Errorf("loading sessions for records: %w", err)
	}
	sessions := analytics.LoadSessions(rows, imp.log)
	records := analytics.ComputeRecords(sessions)
	if err := imp.db.UpsertPersonalRecords(ctx, imp.userID, records); err != nil {
		return fmt.Errorf("upserting personal records: %w", err)
	}
	return nil
}
