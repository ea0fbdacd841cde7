package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
)

type HTTPError struct {
	Code    string   `json:"error_code"`
	Message string   `json:"message"`
	Field   string   `json:"field,omitempty"`
	Details []string `json:"details,omitempty"`
}

// ContextLogger is the gin key holding the request-scoped *logrus.Entry.
const ContextLogger = "logger"

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

var messages = map[string]string{
	CodeValidation:           "invalid input",
	CodeCapacityExceeded:     "shift is full",
	CodeAlreadyBooked:        "client already booked in this shift",
	CodeReferentialConflict:  "still referenced by other records",
	CodeNotAssociated:        "no client profile linked to this account; ask your gym to register your account",
	CodeNotFound:             "not found",
	CodeForbidden:            "not allowed",
	CodeAccountAlreadyLinked: "account already linked to another client",
	CodeShiftStarted:         "shift already started",
}

var statuses = map[string]int{
	CodeValidation:           http.StatusBadRequest,
	CodeNotFound:             http.StatusNotFound,
	CodeNotAssociated:        http.StatusNotFound,
	CodeForbidden:            http.StatusForbidden,
	CodeCapacityExceeded:     http.StatusConflict,
	CodeAlreadyBooked:        http.StatusConflict,
	CodeReferentialConflict:  http.StatusConflict,
	CodeAccountAlreadyLinked: http.StatusConflict,
	CodeShiftStarted:         http.StatusConflict,
}

// Respond maps an error from a use case onto the HTTP response.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status, ok := statuses[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		c.JSON(status, HTTPError{Code: be.Code, Message: messages[be.Code], Field: be.Field})
		return
	}

	var pe *PartialCascadeError
	if errors.As(err, &pe) {
		logger(c).WithError(err).Error("cascade cleanup incomplete")
		c.JSON(http.StatusInternalServerError, HTTPError{
			Code:    CodePartialCascade,
			Message: pe.Entity + " deleted but related records could not be cleaned up",
			Details: pe.Failed,
		})
		return
	}

	var ue *UnavailableError
	if errors.As(err, &ue) {
		logger(c).WithError(err).WithField("op", ue.Op).Error("store unavailable")
		Write(c, http.StatusServiceUnavailable, CodeUnavailable, "temporarily unavailable, try again")
		return
	}

	logger(c).WithError(err).Error("unexpected error")
	Internal(c, "internal_error", "unexpected error")
}

func logger(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(ContextLogger); ok {
		if e, ok := v.(*logrus.Entry); ok {
			return e
		}
	}
	return logrus.NewEntry(logs.Log)
}
