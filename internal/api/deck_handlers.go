package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/akozlova/studycards/internal/logger"
)

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 20)

	decks, err := s.Decks.ListDecks(r.Context(), claims.UserID, page, perPage)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, decks)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.Decks.GetDeck(r.Context(), id, claims.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Decks.DeleteDeck(r.Context(), id, claims.UserID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleExportDeck(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	title, rows, err := s.Decks.ExportRows(r.Context(), id, claims.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	filename := exportFilename(title)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		// headers are already sent; all that is left is recording the failure
		logger.FromContext(r.Context()).Error("failed to write CSV export for deck %d: %v", id, err)
	}
}

// exportFilename turns the deck title into a safe CSV attachment name.
func exportFilename(title string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, title)
	if safe == "" {
		safe = "deck"
	}
	return safe + ".csv"
}
