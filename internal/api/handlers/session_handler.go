package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	api "vitalink/internal/api/application"
	recordingdomain "vitalink/internal/recording/domain"
)

// SessionHandler handles recorded-session queries
type SessionHandler struct {
	service *api.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *api.SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
	}
}

// ListSessions handles GET /api/v1/sessions
// @Summary      List recorded sessions
// @Description  Get all recorded sessions, newest first; empty when recording is disabled
// @Tags         sessions
// @Produce      json
// @Success      200  {array}   application.SessionResponse
// @Failure      500  {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /sessions [get]
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	sessions, err := h.service.ListSessions(r.Context())
	if err != nil {
		logger.Error("Failed to list sessions", "err", err)
		respondJSONError(w, http.StatusInternalServerError, "Failed to list sessions: "+err.Error())
		return
	}

	logger.Debug("Listed sessions", "count", len(sessions))
	respondJSON(w, http.StatusOK, sessions)
}

// ListSamples handles GET /api/v1/sessions/{id}/samples
// @Summary      List recorded samples
// @Description  Get the samples recorded under one session
// @Tags         sessions
// @Produce      json
// @Param        id      path      string  true   "Session ID"
// @Param        limit   query     int     false  "Limit results"
// @Param        offset  query     int     false  "Offset results"
// @Success      200     {array}   application.RecordedSampleResponse
// @Failure      404     {object}  application.ErrorResponse
// @Failure      500     {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /sessions/{id}/samples [get]
func (h *SessionHandler) ListSamples(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)
	sessionID := chi.URLParam(r, "id")

	req := api.ListSamplesRequest{}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			req.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			req.Offset = offset
		}
	}

	samples, err := h.service.ListSamples(r.Context(), sessionID, req)
	if errors.Is(err, recordingdomain.ErrSessionNotFound) {
		respondJSONError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		logger.Error("Failed to list samples", "session_id", sessionID, "err", err)
		respondJSONError(w, http.StatusInternalServerError, "Failed to list samples: "+err.Error())
		return
	}

	logger.Debug("Listed recorded samples", "session_id", sessionID, "count", len(samples))
	respondJSON(w, http.StatusOK, samples)
}
