package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"squadly/internal/announcements/service"
	httputil "squadly/pkg/http"
	"squadly/pkg/logger"
	"squadly/pkg/model"
)

type AnnouncementHandler struct {
	service service.AnnouncementService
	log     *logger.Logger
}

func NewAnnouncementHandler(service service.AnnouncementService, log *logger.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		log:     log,
	}
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var announcement model.Announcement
	if err := json.NewDecoder(r.Body).Decode(&announcement); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &announcement); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, announcement); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	announcements, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, announcements); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *AnnouncementHandler) Upsert(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var announcement model.Announcement
	if err := json.NewDecoder(r.Body).Decode(&announcement); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Upsert", "error", writeErr)
		}
		return
	}

	if err := h.service.Upsert(r.Context(), ps.ByName("id"), &announcement); err != nil {
		h.writeError(w, "Upsert", err)
		return
	}

	if err := httputil.WriteMessage(w, "Announcement updated successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Upsert", "error", err)
	}
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteMessage(w, "Announcement deleted successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *AnnouncementHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *AnnouncementHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/announcements", h.Create)
	router.GET("/announcements", h.List)
	router.PUT("/announcements/:id", h.Upsert)
	router.DELETE("/announcements/:id", h.Delete)
}
