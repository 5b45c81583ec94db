package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.NotFound("patient", nil), http.StatusNotFound},
		{"bad request", apperrors.BadRequest("invalid mobile number", nil), http.StatusBadRequest},
		{"malformed date", apperrors.New(apperrors.ErrMalformedDate, "date must be formatted YYYY-MM-DD"), http.StatusBadRequest},
		{"date in past", apperrors.New(apperrors.ErrDateInPast, "date is in the past"), http.StatusBadRequest},
		{"doctor not in department", apperrors.New(apperrors.ErrDoctorNotInDepartment, "doctor does not belong to this department"), http.StatusBadRequest},
		{"unauthorized", apperrors.New(apperrors.ErrUnauthorized, "invalid credentials"), http.StatusUnauthorized},
		{"forbidden", apperrors.Forbidden("appointment belongs to another doctor"), http.StatusForbidden},
		{"conflict", apperrors.Conflict("appointment is already billed", nil), http.StatusConflict},
		{"doctor unavailable", apperrors.New(apperrors.ErrDoctorUnavailable, "doctor is unavailable on this date"), http.StatusConflict},
		{"capacity exceeded", apperrors.New(apperrors.ErrCapacityExceeded, "doctor is fully booked for this date"), http.StatusConflict},
		{"duplicate appointment", apperrors.New(apperrors.ErrDuplicateAppointment, "patient already has an appointment for this date"), http.StatusConflict},
		{"already unavailable", apperrors.New(apperrors.ErrAlreadyUnavailable, "doctor is already unavailable on this date"), http.StatusConflict},
		{"no record exists", apperrors.New(apperrors.ErrNoRecordExists, "doctor has no unavailability record"), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := record(func(c *gin.Context) { Error(c, tt.err) })
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestInternalErrorMessageIsOpaque(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, apperrors.Internal(errors.New("pq: connection refused")))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestSuccessEnvelopes(t *testing.T) {
	w := record(func(c *gin.Context) { OK(c, gin.H{"id": "42"}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)

	w = record(func(c *gin.Context) { Created(c, nil) })
	assert.Equal(t, http.StatusCreated, w.Code)
}
