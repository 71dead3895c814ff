package adaptor

import (
	"net/http"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	service usecase.AnalyticsService
	log     *zap.Logger
}

func NewAnalyticsHandler(service usecase.AnalyticsService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		log:     log.With(zap.String("handler", "analytics")),
	}
}

// Dashboard handles GET /api/admin/analytics?from=&to=&limit=
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &request.AnalyticsRequest{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Limit: utils.ParseInt(q.Get("limit"), 0),
	}

	dashboard, err := h.service.Dashboard(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "analytics dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}
