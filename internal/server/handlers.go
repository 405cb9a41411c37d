package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	info, _ := r.Context().Value(userInfoKey).(UserInfo)
	writeJSON(w, http.StatusOK, info)
}

// loadSessions returns the user's full decoded session history, serving
// from the injected cache when fresh. Analytics always derive from this
// snapshot; writers purge the cache.
func (s *Server) loadSessions(r *http.Request, uid int, programFilter string) ([]models.WorkoutSession, error) {
	key := fmt.Sprintf("sessions:%d:%s", uid, programFilter)
	rows, ok := s.sessions.Get(key)
	if !ok {
		var err error
		rows, err = s.db.QuerySessions(r.Context(), time.Unix(0, 0), time.Now().AddDate(1, 0, 0), uid, programFilter)
		if err != nil {
			return nil, err
		}
		s.sessions.Set(key, rows)
	}
	return analytics.LoadSessions(rows, s.log), nil
}

func (s *Server) handleQuerySessions(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := s.db.QuerySessions(r.Context(), start, end, uid, r.URL.Query().Get("program"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	row, err := s.db.GetSession(r.Context(), sessionID, uid)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var doc models.WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	row, err := sessionRowFromDoc(&doc, uid)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	inserted, err := s.db.InsertSession(r.Context(), row)
	if err != nil {
		s.log.Error("session insert failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.sessions.Purge()

	if err := s.refreshRecords(r, uid); err != nil {
		s.log.Warn("personal record refresh failed", "error", err)
	}

	status := http.StatusCreated
	if !inserted {
		status = http.StatusOK // idempotent re-send
	}
	writeJSON(w, status, map[string]any{"id": row.ID, "inserted": inserted})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	deleted, err := s.db.DeleteSession(r.Context(), sessionID, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	s.sessions.Purge()

	if err := s.refreshRecords(r, uid); err != nil {
		s.log.Warn("personal record refresh failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// refreshRecords recomputes the personal-record cache from the full
// session history.
func (s *Server) refreshRecords(r *http.Request, uid int) error {
	sessions, err := s.loadSessions(r, uid, "")
	if err != nil {
		return err
	}
	return s.db.UpsertPersonalRecords(r.Context(), uid, analytics.ComputeRecords(sessions))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	sessions, err := s.loadSessions(r, uid, "")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	progress := analytics.AggregateProgress(sessions,
		r.URL.Query().Get("program"), r.URL.Query().Get("exercise"))
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleChartSeries(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	sessions, err := s.loadSessions(r, uid, "")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	series := analytics.BuildChartSeries(sessions,
		r.URL.Query().Get("program"), r.URL.Query().Get("exercise"))
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	now := time.Now()
	month := now.Month()
	year := now.Year()
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := parseMonth(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		month = m
	}
	if v := r.URL.Query().Get("year"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &year); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year"})
			return
		}
	}

	sessions, err := s.loadSessions(r, uid, "")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	grid := analytics.BuildGrid(month, year, analytics.WorkoutDates(sessions), now)
	writeJSON(w, http.StatusOK, map[string]any{
		"month": int(month),
		"year":  year,
		"weeks": grid,
	})
}

func parseMonth(v string) (time.Month, error) {
	var m int
	if _, err := fmt.Sscanf(v, "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid month %q", v)
	}
	if m < 1 || m > 12 {
		return 0, fmt.Errorf("month %d out of range 1-12", m)
	}
	return time.Month(m), nil
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	records, err := s.db.QueryPersonalRecords(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleProgramNames(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	names, err := s.db.ListProgramNames(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// sessionRowFromDoc converts an incoming session document to a storage row.
// The exercise payload stays as the raw document's JSON so the analytics
// loader owns all defensive decoding.
func sessionRowFromDoc(doc *models.WorkoutSession, uid int) (models.SessionRow, error) {
	id := uuid.New()
	if doc.ID != "" {
		parsed, err := uuid.Parse(doc.ID)
		if err != nil {
			return models.SessionRow{}, fmt.Errorf("invalid session ID %q", doc.ID)
		}
		id = parsed
	}

	exercises, err := json.Marshal(doc.Exercises)
	if err != nil {
		return models.SessionRow{}, fmt.Errorf("serializing exercises: %w", err)
	}

	return models.SessionRow{
		ID:          id,
		UserID:      uid,
		ProgramName: doc.ProgramName,
		StartTime:   doc.StartTime,
		EndTime:     doc.EndTime,
		CompletedAt: doc.CompletedAt,
		DurationSec: doc.DurationSec,
		Exercises:   exercises,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 90 days
		end = time.Now()
		start = end.AddDate(0, 0, -90)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
