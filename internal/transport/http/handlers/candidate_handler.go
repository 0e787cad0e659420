package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/cinemate/cinemate/internal/service"
	"github.com/cinemate/cinemate/internal/transport/http/middleware"
)

const (
	defaultCandidateLimit = 20
	maxCandidateLimit     = 100
)

type CandidateHandler struct {
	candidateService *service.CandidateService
}

func NewCandidateHandler(candidateService *service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService}
}

// List returns ranked candidates for the caller. The upper clamp lives here,
// at the API edge; the ranking itself accepts any positive limit.
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := defaultCandidateLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a number")
			return
		}
		limit = n
	}
	if limit > maxCandidateLimit {
		limit = maxCandidateLimit
	}

	candidates, err := h.candidateService.Rank(r.Context(), userID, limit)
	if err != nil {
		log.Error().Err(err).Msg("candidate ranking failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}
