package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"squadly/internal/bookings/service"
	httputil "squadly/pkg/http"
	"squadly/pkg/logger"
	"squadly/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) ListPending(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.ListPending(r.Context())
	if err != nil {
		h.writeError(w, "ListPending", err)
		return
	}
	h.writeBookings(w, "ListPending", bookings)
}

func (h *BookingHandler) ListPendingForUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.ListPendingForUser(r.Context(), ps.ByName("email"))
	if err != nil {
		h.writeError(w, "ListPendingForUser", err)
		return
	}
	h.writeBookings(w, "ListPendingForUser", bookings)
}

func (h *BookingHandler) ListApprovedForUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.ListApprovedForUser(r.Context(), ps.ByName("email"))
	if err != nil {
		h.writeError(w, "ListApprovedForUser", err)
		return
	}
	h.writeBookings(w, "ListApprovedForUser", bookings)
}

func (h *BookingHandler) ListConfirmedForUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.ListConfirmedForUser(r.Context(), ps.ByName("email"))
	if err != nil {
		h.writeError(w, "ListConfirmedForUser", err)
		return
	}
	h.writeBookings(w, "ListConfirmedForUser", bookings)
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Approve(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Approve", err)
		return
	}

	if err := httputil.WriteMessage(w, "Booking approved successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Approve", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Cancel(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteMessage(w, "Booking cancelled successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "error", err)
	}
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Reject(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Reject", err)
		return
	}

	if err := httputil.WriteMessage(w, "Booking rejected successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Reject", "error", err)
	}
}

func (h *BookingHandler) writeBookings(w http.ResponseWriter, handlerName string, bookings []*model.Booking) {
	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", handlerName, "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookings", h.Create)
	router.GET("/bookings/pending", h.ListPending)
	router.GET("/bookings/pending/:email", h.ListPendingForUser)
	router.GET("/bookings/approved/:email", h.ListApprovedForUser)
	router.GET("/bookings/confirmed/:email", h.ListConfirmedForUser)
	router.PUT("/bookings/:id/approve", h.Approve)
	router.DELETE("/bookings/:id", h.Cancel)
	router.DELETE("/bookings/:id/reject", h.Reject)
}
