package api

import (
	"net/http"

	"github.com/akozlova/studycards/internal/models"
)

type submitSessionRequest struct {
	DeckID          int64               `json:"deck_id" validate:"required,min=1"`
	DurationSeconds int                 `json:"duration_seconds" validate:"min=0"`
	CardResults     []models.CardResult `json:"card_results" validate:"required,min=1"`
}

func (s *Server) handleSubmitSession(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())

	var req submitSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Sessions.SubmitSession(r.Context(), claims.UserID, req.DeckID, req.CardResults, req.DurationSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())
	limit := queryInt(r, "limit", 50)

	sessions, err := s.Sessions.ListSessions(r.Context(), claims.UserID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}
