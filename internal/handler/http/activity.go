package http

import (
	"net/http"
	"strconv"

	"github.com/peopledesk/peopledesk-api/internal/handler/http/middleware"
	"github.com/peopledesk/peopledesk-api/internal/handler/http/response"
	activityService "github.com/peopledesk/peopledesk-api/internal/service/activity"
)

type ActivityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type ActivityHandlerImpl struct {
	activityLogger activityService.Logger
}

func NewActivityHandler(logger activityService.Logger) ActivityHandler {
	return &ActivityHandlerImpl{activityLogger: logger}
}

// List implements ActivityHandler.
func (h *ActivityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	limit := 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	entries, err := h.activityLogger.List(r.Context(), actorID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}
