package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"squadly/pkg/logger"
)

// RootHandler serves the plain-text liveness banner the frontend polls.
type RootHandler struct {
	log *logger.Logger
}

func NewRootHandler(log *logger.Logger) *RootHandler {
	return &RootHandler{log: log}
}

func (h *RootHandler) Root(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("Squadly server is running!")); err != nil {
		h.log.Error("failed to write response", "handler", "Root", "error", err)
	}
}

func (h *RootHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Root)
}
