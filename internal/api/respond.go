// internal/api/respond.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	custom_errors "github-issue-tracker/internal/errors"
)

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, map[string]string{"error": message})
}

// writeError maps domain errors to HTTP statuses. Anything unrecognised is logged and hidden.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, custom_errors.ErrMissingContext),
		errors.Is(err, custom_errors.ErrIssueClosed),
		errors.Is(err, custom_errors.ErrIssueNotPending):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, custom_errors.ErrIssueNotFound):
		respondWithError(w, http.StatusNotFound, "Issue not found")
	default:
		h.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
