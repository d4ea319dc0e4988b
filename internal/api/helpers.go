package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/covolex/internal/covoltree"
	"github.com/dgallion1/covolex/internal/extract"
	"github.com/dgallion1/covolex/internal/report"
	"github.com/dgallion1/covolex/internal/session"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// errorStatus maps the error taxonomy onto HTTP status codes. Everything
// unrecognized is an internal error.
func errorStatus(err error) int {
	var (
		notFound    *session.NotFoundError
		parseErr    *covoltree.ParseError
		badCategory *extract.UnsupportedCategoryError
		validation  *report.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.As(err, &badCategory):
		return http.StatusBadRequest
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
