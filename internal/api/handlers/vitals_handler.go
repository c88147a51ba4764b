package handlers

import (
	"net/http"

	api "vitalink/internal/api/application"
)

// VitalsHandler handles live vitals queries
type VitalsHandler struct {
	service *api.VitalsService
}

// NewVitalsHandler creates a new vitals handler
func NewVitalsHandler(service *api.VitalsService) *VitalsHandler {
	return &VitalsHandler{
		service: service,
	}
}

// GetCurrent handles GET /api/v1/vitals
// @Summary      Current vitals
// @Description  Get the instantaneous heart rate, temperature, and oxygen saturation
// @Tags         vitals
// @Produce      json
// @Success      200  {object}  application.SampleResponse
// @Failure      404  {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /vitals [get]
func (h *VitalsHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	sample, ok := h.service.Current()
	if !ok {
		respondJSONError(w, http.StatusNotFound, "No samples ingested yet")
		return
	}

	logger.Debug("Served current vitals", "heart_rate", sample.HeartRate)
	respondJSON(w, http.StatusOK, sample)
}

// GetWindow handles GET /api/v1/vitals/window
// @Summary      Rolling window
// @Description  Get the rolling window of the most recent samples, oldest first
// @Tags         vitals
// @Produce      json
// @Success      200  {array}  application.SampleResponse
// @Security     ApiKeyAuth
// @Router       /vitals/window [get]
func (h *VitalsHandler) GetWindow(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	window := h.service.Window()

	logger.Debug("Served vitals window", "count", len(window))
	respondJSON(w, http.StatusOK, window)
}

// ListEvents handles GET /api/v1/events
// @Summary      Event log
// @Description  Get the last retained timestamped event strings, oldest first
// @Tags         vitals
// @Produce      json
// @Success      200  {array}  application.EventResponse
// @Security     ApiKeyAuth
// @Router       /events [get]
func (h *VitalsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	events := h.service.Events()

	logger.Debug("Served events", "count", len(events))
	respondJSON(w, http.StatusOK, events)
}
