package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

func TestHandleError(t *testing.T) {
	verrs := validator.ValidationErrors{}
	verrs.Add("year", "year is required")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", verrs, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"out of scope", user.ErrOutOfScope, http.StatusForbidden, "FORBIDDEN"},
		{"unknown shift", shift.ErrShiftNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped conflict", fmt.Errorf("%w: S1", schedule.ErrShiftConflict), http.StatusConflict, "CONFLICT"},
		{"too early", attendance.ErrTooEarly, http.StatusConflict, "CONFLICT"},
		{"outside window", attendance.ErrOutOfWindow, http.StatusConflict, "CONFLICT"},
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{"bad kilometers", attendance.ErrInvalidKilometers, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}
