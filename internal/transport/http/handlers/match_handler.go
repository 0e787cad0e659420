package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cinemate/cinemate/internal/service"
	"github.com/cinemate/cinemate/internal/transport/http/middleware"
	"github.com/cinemate/cinemate/pkg/validator"
)

type MatchHandler struct {
	matchService *service.MatchService
}

func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type matchActionInput struct {
	TargetID uuid.UUID `json:"target_id"`
	ItemID   int64     `json:"item_id"`
}

// Request expresses interest in a movie toward another user. The response
// reports whether this completed a mutual match and, if so, the room id —
// the same id no matter which side's call discovered the match.
func (h *MatchHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input matchActionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if errs := validator.ValidateMatchAction(input.TargetID, input.ItemID); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	outcome, err := h.matchService.Request(r.Context(), userID, input.TargetID, input.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotMatchSelf):
			writeError(w, http.StatusBadRequest, "CANNOT_MATCH_SELF", "Cannot send a match request to yourself")
		case errors.Is(err, service.ErrInvalidItem):
			writeError(w, http.StatusBadRequest, "INVALID_ITEM", "Movie id must be a positive number")
		case errors.Is(err, service.ErrTargetNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Target user not found")
		default:
			log.Error().Err(err).Msg("match request failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// Decline removes a received request. Declining something that is already
// gone still succeeds; double-clicks and retries are harmless.
func (h *MatchHandler) Decline(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input matchActionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if errs := validator.ValidateMatchAction(input.TargetID, input.ItemID); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.matchService.Decline(r.Context(), userID, input.TargetID, input.ItemID); err != nil {
		if errors.Is(err, service.ErrInvalidItem) {
			writeError(w, http.StatusBadRequest, "INVALID_ITEM", "Movie id must be a positive number")
			return
		}
		log.Error().Err(err).Msg("decline failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	otherID, err := uuid.Parse(r.URL.Query().Get("other_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid other_id")
		return
	}

	status, err := h.matchService.Status(r.Context(), userID, otherID)
	if err != nil {
		log.Error().Err(err).Msg("status lookup failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *MatchHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	matches, err := h.matchService.ListActive(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("list active matches failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, matches)
}
