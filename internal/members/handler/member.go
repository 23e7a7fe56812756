package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"squadly/internal/members/service"
	httputil "squadly/pkg/http"
	"squadly/pkg/logger"
)

type MemberHandler struct {
	service service.MemberService
	log     *logger.Logger
}

func NewMemberHandler(service service.MemberService, log *logger.Logger) *MemberHandler {
	return &MemberHandler{
		service: service,
		log:     log,
	}
}

type membershipResponse struct {
	IsMember bool `json:"is_member"`
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	members, err := h.service.ListMembers(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, members); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *MemberHandler) Check(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	isMember, err := h.service.IsMember(r.Context(), ps.ByName("email"))
	if err != nil {
		h.writeError(w, "Check", err)
		return
	}

	if err := httputil.WriteSuccess(w, membershipResponse{IsMember: isMember}); err != nil {
		h.log.Error("failed to write success response", "handler", "Check", "error", err)
	}
}

func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.RemoveMember(r.Context(), ps.ByName("email")); err != nil {
		h.writeError(w, "Remove", err)
		return
	}

	if err := httputil.WriteMessage(w, "Member removed successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Remove", "error", err)
	}
}

func (h *MemberHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *MemberHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/members", h.List)
	router.GET("/members/check/:email", h.Check)
	router.DELETE("/members/:email", h.Remove)
}
