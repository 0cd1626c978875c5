package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"careerlens/internal/core"
	"careerlens/internal/insights"
	"careerlens/internal/persistence"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetInsights returns the caller's industry insight record, creating
// it lazily on first access.
func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}

	if user.Industry == "" {
		writeError(w, http.StatusBadRequest, "profile has no industry set")
		return
	}

	insight, err := s.svc.GetOrCreate(r.Context(), user.Industry)
	if err != nil {
		s.log.Error("failed to get industry insight",
			"industry", user.Industry, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to load industry insights")
		return
	}

	writeJSON(w, http.StatusOK, insight)
}

// handleUpdateProfile applies the submitted profile fields and ensures an
// insight record exists for the submitted industry. Internal failure detail
// is logged, never surfaced.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}

	var upd insights.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if upd.Industry == "" {
		writeError(w, http.StatusBadRequest, "industry is required")
		return
	}

	updated, err := s.svc.UpdateProfile(r.Context(), user, upd)
	if err != nil {
		s.log.Error("failed to update profile",
			"user_id", user.ID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleOnboardingStatus reports whether the caller has picked an industry.
func (s *Server) handleOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"isOnboarded": user.Industry != "",
	})
}

// resolveUser loads the caller's profile, writing the 404 response itself
// when no profile backs the identity.
func (s *Server) resolveUser(w http.ResponseWriter, r *http.Request) (*core.UserProfile, bool) {
	subject := callerIdentity(r.Context())
	user, err := s.db.Users().FindByAuthID(r.Context(), subject)
	if errors.Is(err, persistence.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return nil, false
	}
	if err != nil {
		s.log.Error("failed to resolve user", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	return user, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
