package api

import (
	"net/http"

	"github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/models"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	claims := userFromContext(r.Context())

	maxBytes := int64(s.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		handleError(w, r, errors.NewBadRequestError("upload too large or malformed"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewValidationError("file", "is required"))
		return
	}
	defer file.Close()

	mode := models.ParseMode(r.FormValue("mode"))

	result, err := s.Generation.CreateDeckFromPDF(r.Context(), claims.UserID, file, header.Filename, mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}
