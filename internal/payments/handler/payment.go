package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"squadly/internal/payments/service"
	httputil "squadly/pkg/http"
	"squadly/pkg/logger"
	"squadly/pkg/model"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

type processPaymentResponse struct {
	Message   string `json:"message"`
	PaymentID string `json:"payment_id"`
}

func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payment model.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Process", "error", writeErr)
		}
		return
	}

	processed, err := h.service.Process(r.Context(), &payment)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Process", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusCreated, processPaymentResponse{
		Message:   "Payment processed successfully",
		PaymentID: processed.ID,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Process", "error", err)
	}
}

func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	history, err := h.service.HistoryForUser(r.Context(), ps.ByName("email"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "History", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, history); err != nil {
		h.log.Error("failed to write success response", "handler", "History", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/payments", h.Process)
	router.GET("/payments/history/:email", h.History)
}
