package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk-api/internal/authz"
	"github.com/peopledesk/peopledesk-api/internal/domain/attendance"
	"github.com/peopledesk/peopledesk-api/internal/domain/auth"
	"github.com/peopledesk/peopledesk-api/internal/domain/identity"
	"github.com/peopledesk/peopledesk-api/internal/domain/leave"
	"github.com/peopledesk/peopledesk-api/internal/pkg/validator"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a", "b"}, NewMeta(1, 20, 41))

	resp := decode(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.EqualValues(t, 41, resp.Meta.TotalItems)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"forbidden", authz.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"duplicate email", identity.ErrEmailExists, http.StatusConflict, "CONFLICT"},
		{"missing leave request", leave.ErrRequestNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"already processed", leave.ErrAlreadyProcessed, http.StatusConflict, "CONFLICT"},
		{"inverted range", leave.ErrInvalidDateRange, http.StatusBadRequest, "BAD_REQUEST"},
		{"duplicate check-in", attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleErrorValidationDetails(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "email", Message: "Valid email is required"},
		{Field: "password", Message: "Password must be at least 8 characters"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "Valid email is required", resp.Error.Details["email"])
}

// HandleError wraps are still recognized through errors.Is.
func TestHandleErrorWrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.Join(errors.New("context"), authz.ErrForbidden))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
