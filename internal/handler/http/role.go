package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peopledesk/peopledesk-api/internal/domain/role"
	"github.com/peopledesk/peopledesk-api/internal/handler/http/middleware"
	"github.com/peopledesk/peopledesk-api/internal/handler/http/response"
	roleService "github.com/peopledesk/peopledesk-api/internal/service/role"
)

type RoleHandler interface {
	GetMyRole(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
}

type RoleHandlerImpl struct {
	roleService roleService.Service
}

func NewRoleHandler(svc roleService.Service) RoleHandler {
	return &RoleHandlerImpl{roleService: svc}
}

type assignRoleRequest struct {
	Role string `json:"role"`
}

// GetMyRole implements RoleHandler.
func (h *RoleHandlerImpl) GetMyRole(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	effective, err := h.roleService.RoleOf(r.Context(), actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]string{"role": string(effective)})
}

// ListByUser implements RoleHandler.
func (h *RoleHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	assignments, err := h.roleService.ListByUser(r.Context(), actorID, userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, assignments)
}

// Assign implements RoleHandler.
func (h *RoleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	var req assignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Assign role decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	assignment, err := h.roleService.Assign(r.Context(), actorID, userID, role.Role(req.Role))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Role assigned successfully", assignment)
}

// Revoke implements RoleHandler.
func (h *RoleHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	userID := chi.URLParam(r, "userID")
	roleName := chi.URLParam(r, "role")
	if userID == "" || roleName == "" {
		response.BadRequest(w, "User ID and role are required", nil)
		return
	}

	if err := h.roleService.Revoke(r.Context(), actorID, userID, role.Role(roleName)); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Role revoked successfully", nil)
}
