package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// healthResponse is the health endpoint's payload shape.
type healthResponse struct {
	Status         string            `json:"status"`
	Timestamp      time.Time         `json:"timestamp"`
	ResponseTimeMs int64             `json:"response_time_ms"`
	Services       map[string]string `json:"services"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbStatus := "ok"
	status := "ok"
	if err := s.db.Ping(r.Context()); err != nil {
		dbStatus = "unreachable"
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:         status,
		Timestamp:      time.Now().UTC(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
		Services: map[string]string{
			"database": dbStatus,
			"api":      "ok",
		},
	})
}

// handleHealthReport accepts a client status report and logs it. There is
// no persisted effect; the log line is the whole feature.
func (s *Server) handleHealthReport(w http.ResponseWriter, r *http.Request) {
	var report struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	s.log.Info("client health report",
		"status", report.Status,
		"message", report.Message,
		"remote", r.RemoteAddr,
	)
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
