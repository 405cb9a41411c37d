package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/liftlog/internal/models"
)

// draftResponse wraps the stored draft with the restored flag the client
// uses to show its "draft restored" banner.
type draftResponse struct {
	Restored bool                   `json:"restored"`
	Draft    *models.WorkoutSession `json:"draft,omitempty"`
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	// Load never fails: a corrupted draft reads as absent.
	session := s.drafts.Load(uid)
	writeJSON(w, http.StatusOK, draftResponse{Restored: session != nil, Draft: session})
}

func (s *Server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var session models.WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(session.Exercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "draft needs at least one exercise"})
		return
	}

	if err := s.drafts.Save(uid, &session); err != nil {
		s.log.Error("draft save failed", "user_id", uid, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

func (s *Server) handleClearDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	if err := s.drafts.Clear(uid); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}
