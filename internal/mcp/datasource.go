package mcp

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QuerySessions(ctx context.Context, start, end time.Time, userID int, programFilter string) ([]models.SessionRow, error)
	QueryPersonalRecords(ctx context.Context, userID int) ([]models.PersonalRecordRow, error)
	QueryGoals(ctx context.Context, userID int) ([]models.GoalRow, error)
	QueryMeasurements(ctx context.Context, start, end time.Time, userID int) ([]models.MeasurementRow, error)
	ListProgramNames(ctx context.Context, userID int) ([]string, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
