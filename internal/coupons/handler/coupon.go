package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"squadly/internal/coupons/service"
	httputil "squadly/pkg/http"
	"squadly/pkg/logger"
	"squadly/pkg/model"
)

type CouponHandler struct {
	service service.CouponService
	log     *logger.Logger
}

func NewCouponHandler(service service.CouponService, log *logger.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		log:     log,
	}
}

func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	validation, err := h.service.Validate(r.Context(), ps.ByName("code"))
	if err != nil {
		h.writeError(w, "Validate", err)
		return
	}

	if err := httputil.WriteSuccess(w, validation); err != nil {
		h.log.Error("failed to write success response", "handler", "Validate", "error", err)
	}
}

func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var coupon model.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &coupon); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, coupon); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	coupons, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, coupons); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var coupon model.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &coupon); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteMessage(w, "Coupon updated successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteMessage(w, "Coupon deleted successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *CouponHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *CouponHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/coupons", h.Create)
	router.GET("/coupons", h.List)
	router.GET("/coupons/validate/:code", h.Validate)
	router.PUT("/coupons/:id", h.Update)
	router.DELETE("/coupons/:id", h.Delete)
}
