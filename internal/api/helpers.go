package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/akozlova/studycards/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON decodes the request body into v and runs struct validation.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError(fmt.Sprintf("invalid request body: %v", err))
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if ok := stderrors.As(err, &verrs); ok && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(strings.ToLower(fe.Field()), fmt.Sprintf("failed %q validation", fe.Tag()))
		}
		return errors.NewBadRequestError("invalid request body")
	}
	return nil
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.NewBadRequestError(fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}

// queryInt parses an optional integer query parameter, returning def when
// absent or unparseable.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
