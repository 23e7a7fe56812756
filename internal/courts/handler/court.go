package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"squadly/internal/courts/service"
	httputil "squadly/pkg/http"
	"squadly/pkg/logger"
	"squadly/pkg/model"
)

type CourtHandler struct {
	service service.CourtService
	log     *logger.Logger
}

func NewCourtHandler(service service.CourtService, log *logger.Logger) *CourtHandler {
	return &CourtHandler{
		service: service,
		log:     log,
	}
}

func (h *CourtHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var court model.Court
	if err := json.NewDecoder(r.Body).Decode(&court); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &court); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, court); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *CourtHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	courts, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, courts); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *CourtHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var court model.Court
	if err := json.NewDecoder(r.Body).Decode(&court); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &court); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteMessage(w, "Court updated successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *CourtHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteMessage(w, "Court deleted successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *CourtHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *CourtHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/courts", h.Create)
	router.GET("/courts", h.List)
	router.PUT("/courts/:id", h.Update)
	router.DELETE("/courts/:id", h.Delete)
}
