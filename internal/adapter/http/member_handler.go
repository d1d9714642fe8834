package http

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type MemberHandler struct {
	service interfaces.MemberService
	logger  logger.Logger
}

func NewMemberHandler(service interfaces.MemberService, log logger.Logger) *MemberHandler {
	return &MemberHandler{service: service, logger: log}
}

type MemberRequest struct {
	Name string `json:"name"`
}

type MemberResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MemberNameResponse struct {
	Name string `json:"name"`
}

func validateMemberRequest(req MemberRequest) []ValidationError {
	var errors []ValidationError

	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 1 {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	} else if n > 100 {
		errors = append(errors, ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}
	return errors
}

func (h *MemberHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := validateMemberRequest(req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	id, err := h.service.Join(r.Context(), interfaces.JoinMemberCommand{Name: req.Name})
	if err != nil {
		respondError(w, r, h.logger, "member_join_failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, errs := pathID(r)
	if errs != nil {
		respondValidation(w, errs)
		return
	}

	var req MemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := validateMemberRequest(req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	member, err := h.service.Update(r.Context(), id, req.Name)
	if err != nil {
		respondError(w, r, h.logger, "member_update_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, MemberResponse{ID: member.ID, Name: member.Name})
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.FindMembers(r.Context())
	if err != nil {
		respondError(w, r, h.logger, "member_list_failed", err)
		return
	}

	names := make([]MemberNameResponse, 0, len(members))
	for _, m := range members {
		names = append(names, MemberNameResponse{Name: m.Name})
	}
	respondJSON(w, http.StatusOK, Result[[]MemberNameResponse]{Data: names})
}
