// internal/api/sync.go
package api

import (
	"net/http"
	"strings"

	"github-issue-tracker/internal/syncer"
)

type syncResponse struct {
	Success bool `json:"success"`
	syncer.Result
}

type syncFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// syncIssues mirrors every configured repository.
// POST /api/sync-issues
func (h *Handler) syncIssues(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncer.SyncAll(r.Context())
	if err != nil {
		h.logger.Error("Sync failed", "error", err)
		respondWithJSON(w, http.StatusInternalServerError, syncFailure{Error: err.Error()})
		return
	}
	respondWithJSON(w, http.StatusOK, syncResponse{Success: true, Result: result})
}

// syncIssuesByUser mirrors the open issues assigned to one GitHub user.
// POST /api/sync-issues-by-user?username=
func (h *Handler) syncIssuesByUser(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		respondWithJSON(w, http.StatusBadRequest, syncFailure{Error: "username is required"})
		return
	}

	result, err := h.syncer.SyncUser(r.Context(), username)
	if err != nil {
		h.logger.Error("Sync by user failed", "username", username, "error", err)
		respondWithJSON(w, http.StatusInternalServerError, syncFailure{Error: err.Error()})
		return
	}
	respondWithJSON(w, http.StatusOK, syncResponse{Success: true, Result: result})
}
