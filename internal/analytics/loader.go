package analytics

import (
	"encoding/json"
	"log/slog"

	"github.com/claude/liftlog/internal/models"
)

// LoadSessions converts stored session rows into in-memory sessions for the
// aggregators. The exercise payload is decoded defensively: a row whose
// JSON cannot be decoded at all is logged and dropped, never an error.
// Column timestamps win over whatever the raw document carries.
func LoadSessions(rows []models.SessionRow, log *slog.Logger) []models.WorkoutSession {
	sessions := make([]models.WorkoutSession, 0, len(rows))
	for _, row := range rows {
		var exercises []models.Exercise
		if len(row.Exercises) > 0 {
			if err := json.Unmarshal(row.Exercises, &exercises); err != nil {
				if log != nil {
					log.Warn("dropping session with undecodable exercises",
						"session_id", row.ID, "error", err)
				}
				continue
			}
		}
		sessions = append(sessions, models.WorkoutSession{
			ID:          row.ID.String(),
			ProgramName: row.ProgramName,
			Exercises:   exercises,
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
			CompletedAt: row.CompletedAt,
			DurationSec: row.DurationSec,
		})
	}
	return sessions
}
