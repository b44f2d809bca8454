package api

import "net/http"

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())

	stats, err := s.Stats.GetStats(r.Context(), claims.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())

	if err := s.Stats.ResetStats(r.Context(), claims.UserID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
