package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"squadly/internal/admin/service"
	httputil "squadly/pkg/http"
	"squadly/pkg/logger"
)

type StatsHandler struct {
	service service.StatsService
	log     *logger.Logger
}

func NewStatsHandler(service service.StatsService, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		log:     log,
	}
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.service.Collect(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Stats", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "Stats", "error", err)
	}
}

func (h *StatsHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/admin/stats", h.Stats)
}
