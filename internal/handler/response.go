package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": data})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": message})
}

// Error maps an application error to its transport status.
func Error(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"status": "error", "message": messageOf(err)})
}

func statusOf(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrBadRequest, apperrors.ErrMalformedQuery, apperrors.ErrMalformedDate,
		apperrors.ErrDateInPast, apperrors.ErrDoctorNotInDepartment:
		return http.StatusBadRequest
	case apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrForbidden:
		return http.StatusForbidden
	case apperrors.ErrConflict, apperrors.ErrDoctorUnavailable, apperrors.ErrCapacityExceeded,
		apperrors.ErrDuplicateAppointment, apperrors.ErrAlreadyUnavailable, apperrors.ErrNoRecordExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(err error) string {
	if apperrors.CodeOf(err) == apperrors.ErrInternal {
		return "internal server error"
	}
	return err.Error()
}
