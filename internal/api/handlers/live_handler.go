package handlers

import (
	"context"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	api "vitalink/internal/api/application"
)

const liveWriteTimeout = 5 * time.Second

// LiveHandler streams samples over a WebSocket: a full-window frame on
// connect, then one frame per appended sample.
type LiveHandler struct {
	service *api.VitalsService
}

// NewLiveHandler creates a new live stream handler
func NewLiveHandler(service *api.VitalsService) *LiveHandler {
	return &LiveHandler{
		service: service,
	}
}

// Stream handles GET /api/v1/live
// @Summary      Live sample stream
// @Description  WebSocket stream of samples; the first frame carries the full window
// @Tags         vitals
// @Success      101
// @Security     ApiKeyAuth
// @Router       /live [get]
func (h *LiveHandler) Stream(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{
			"localhost",
			"localhost:*",
			"127.0.0.1",
			"127.0.0.1:*",
			"[::1]",
			"[::1]:*",
		},
	})
	if err != nil {
		logger.Warn("WebSocket accept failed", "err", err)
		return
	}
	defer ws.Close(websocket.StatusInternalError, "stream aborted")

	ctx := r.Context()

	// Subscribe before the initial snapshot so no sample falls between
	// the window frame and the first incremental frame.
	samples, cancel := h.service.Subscribe()
	defer cancel()

	window := h.service.Window()
	if err := writeFrame(ctx, ws, api.LiveFrame{Type: "window", Samples: window}); err != nil {
		logger.Debug("Live stream closed during window frame", "err", err)
		return
	}

	logger.Debug("Live stream opened", "window", len(window))

	for {
		select {
		case sample, ok := <-samples:
			if !ok {
				ws.Close(websocket.StatusNormalClosure, "")
				return
			}
			resp := api.ToSampleResponse(sample)
			if err := writeFrame(ctx, ws, api.LiveFrame{Type: "sample", Sample: &resp}); err != nil {
				logger.Debug("Live stream closed", "err", err)
				return
			}
		case <-ctx.Done():
			ws.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}
	}
}

func writeFrame(ctx context.Context, ws *websocket.Conn, frame api.LiveFrame) error {
	writeCtx, cancel := context.WithTimeout(ctx, liveWriteTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, ws, frame)
}
