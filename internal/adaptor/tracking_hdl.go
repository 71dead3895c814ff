package adaptor

import (
	"encoding/json"
	"net/http"

	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"
	"fleet-admin/pkg/websocket"

	"go.uber.org/zap"
)

type TrackingHandler struct {
	service usecase.TrackingService
	hub     *websocket.Hub
	log     *zap.Logger
}

func NewTrackingHandler(service usecase.TrackingService, hub *websocket.Hub, log *zap.Logger) *TrackingHandler {
	return &TrackingHandler{
		service: service,
		hub:     hub,
		log:     log.With(zap.String("handler", "tracking")),
	}
}

// Snapshot handles GET /api/admin/tracking
func (h *TrackingHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Latest(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "tracking snapshot")
		return
	}

	utils.ResponseSuccess(w, "success", snapshot)
}

// Refresh handles POST /api/admin/tracking/refresh
func (h *TrackingHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Refresh(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "refresh tracking")
		return
	}

	utils.ResponseSuccess(w, "success", snapshot)
}

// Stream handles GET /api/admin/tracking/ws. The current snapshot is sent
// on connect, then every poll is pushed.
func (h *TrackingHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Live tracking stream disabled", nil, nil)
		return
	}

	var initial []byte
	if snapshot, err := h.service.Latest(r.Context()); err != nil {
		h.log.Warn("No initial snapshot for stream", zap.Error(err))
	} else if initial, err = json.Marshal(snapshot); err != nil {
		h.log.Warn("Failed to encode initial snapshot", zap.Error(err))
		initial = nil
	}

	h.hub.ServeWS(w, r, initial)
}
