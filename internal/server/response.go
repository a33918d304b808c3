package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/algebrix/algebrix/internal/engine"
	"github.com/algebrix/algebrix/internal/equation"
	"github.com/algebrix/algebrix/internal/progress"
	"github.com/algebrix/algebrix/internal/tutor"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

// statusFor maps a tutor error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, equation.ErrNotFound), errors.Is(err, progress.ErrOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, tutor.ErrLocked), errors.Is(err, tutor.ErrNotAssessed):
		return http.StatusForbidden
	case errors.Is(err, tutor.ErrUnknownSession):
		return http.StatusUnauthorized
	case errors.Is(err, tutor.ErrNoOpenEquation),
		errors.Is(err, engine.ErrKindMismatch),
		errors.Is(err, engine.ErrEquationCompleted):
		return http.StatusConflict
	case errors.Is(err, tutor.ErrBlankName):
		return http.StatusBadRequest
	case errors.Is(err, tutor.ErrExplainUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// failErr writes err with its mapped status. Internal errors are logged and
// their text is not exposed.
func (s *Server) failErr(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", zapRequest(c, err)...)
		fail(c, code, "internal server error")
		return
	}
	fail(c, code, err.Error())
}
