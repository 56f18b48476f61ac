package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peopledesk/peopledesk-api/internal/domain/profile"
	"github.com/peopledesk/peopledesk-api/internal/handler/http/middleware"
	"github.com/peopledesk/peopledesk-api/internal/handler/http/response"
	profileService "github.com/peopledesk/peopledesk-api/internal/service/profile"
)

type ProfileHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	profileService profileService.Service
}

func NewProfileHandler(svc profileService.Service) ProfileHandler {
	return &ProfileHandlerImpl{profileService: svc}
}

// parsePagination reads page/limit query params with sane defaults.
func parsePagination(r *http.Request) (page, limit int) {
	page, limit = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}

// List implements ProfileHandler.
func (h *ProfileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := profile.Filter{}
	filter.Page, filter.Limit = parsePagination(r)
	if v := r.URL.Query().Get("department"); v != "" {
		filter.Department = &v
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}

	profiles, total, err := h.profileService.List(r.Context(), actorID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, profiles, response.NewMeta(filter.Page, filter.Limit, total))
}

// GetMe implements ProfileHandler.
func (h *ProfileHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	p, err := h.profileService.Get(r.Context(), actorID, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, p)
}

// Get implements ProfileHandler.
func (h *ProfileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profileID := chi.URLParam(r, "id")
	if profileID == "" {
		response.BadRequest(w, "Profile ID is required", nil)
		return
	}

	p, err := h.profileService.Get(r.Context(), actorID, profileID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, p)
}

// Create implements ProfileHandler.
func (h *ProfileHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req profile.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.profileService.Create(r.Context(), actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Profile created successfully", created)
}

// Update implements ProfileHandler.
func (h *ProfileHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")
	if profileID == "" {
		response.BadRequest(w, "Profile ID is required", nil)
		return
	}
	h.update(w, r, profileID)
}

// UpdateMe implements ProfileHandler.
func (h *ProfileHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	h.update(w, r, actorID)
}

func (h *ProfileHandlerImpl) update(w http.ResponseWriter, r *http.Request, profileID string) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req profile.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = profileID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.profileService.Update(r.Context(), actorID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", nil)
}

// Delete implements ProfileHandler.
func (h *ProfileHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profileID := chi.URLParam(r, "id")
	if profileID == "" {
		response.BadRequest(w, "Profile ID is required", nil)
		return
	}

	if err := h.profileService.Delete(r.Context(), actorID, profileID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile deleted successfully", nil)
}
