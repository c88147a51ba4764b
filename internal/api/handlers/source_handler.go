package handlers

import (
	"errors"
	"net/http"

	api "vitalink/internal/api/application"
	sourceinfra "vitalink/internal/source/infrastructure"
)

// SourceHandler handles source lifecycle actions
type SourceHandler struct {
	service *api.SourceService
}

// NewSourceHandler creates a new source handler
func NewSourceHandler(service *api.SourceService) *SourceHandler {
	return &SourceHandler{
		service: service,
	}
}

// GetStatus handles GET /api/v1/source
// @Summary      Source status
// @Description  Get the currently active data source, if any
// @Tags         source
// @Produce      json
// @Success      200  {object}  application.SourceStatusResponse
// @Security     ApiKeyAuth
// @Router       /source [get]
func (h *SourceHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Status())
}

// StartDemo handles POST /api/v1/source/demo
// @Summary      Start demo mode
// @Description  Start the synthetic data generator, superseding any hardware session
// @Tags         source
// @Produce      json
// @Success      200  {object}  application.SourceStatusResponse
// @Failure      500  {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /source/demo [post]
func (h *SourceHandler) StartDemo(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	if err := h.service.StartDemo(r.Context()); err != nil {
		logger.Error("Failed to start demo mode", "err", err)
		respondJSONError(w, http.StatusInternalServerError, "Failed to start demo mode: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.service.Status())
}

// Connect handles POST /api/v1/source/connect
// @Summary      Connect hardware
// @Description  Pair with a peripheral and start streaming, superseding demo mode
// @Tags         source
// @Produce      json
// @Success      200  {object}  application.SourceStatusResponse
// @Failure      502  {object}  application.ErrorResponse
// @Failure      503  {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /source/connect [post]
func (h *SourceHandler) Connect(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	err := h.service.Connect(r.Context())
	if errors.Is(err, sourceinfra.ErrBluetoothUnavailable) {
		logger.Error("Bluetooth unavailable", "err", err)
		respondJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		logger.Error("Failed to connect", "err", err)
		respondJSONError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.service.Status())
}

// Stop handles DELETE /api/v1/source
// @Summary      Stop the active source
// @Description  Disconnect hardware or stop demo mode; a no-op when idle
// @Tags         source
// @Produce      json
// @Success      200  {object}  application.SourceStatusResponse
// @Failure      500  {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /source [delete]
func (h *SourceHandler) Stop(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	if err := h.service.Stop(r.Context()); err != nil {
		logger.Error("Failed to stop source", "err", err)
		respondJSONError(w, http.StatusInternalServerError, "Failed to stop source: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.service.Status())
}
