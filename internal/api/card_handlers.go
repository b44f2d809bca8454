package api

import (
	"net/http"

	"github.com/akozlova/studycards/internal/services"
)

type addCardRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Source   string `json:"source"`
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())
	deckID, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req addCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Cards.AddCard(r.Context(), deckID, claims.UserID, req.Question, req.Answer, req.Source)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())
	cardID, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req services.CardUpdate
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Cards.UpdateCard(r.Context(), cardID, claims.UserID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())
	cardID, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Cards.DeleteCard(r.Context(), cardID, claims.UserID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
