package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: http.StatusText(status), Message: message})
}

// RespondWithAppError maps the error kind to an HTTP status and writes it.
func RespondWithAppError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("unexpected error")
		appErr = NewStoreUnavailableError("Internal server error", err)
	}

	status := StatusForKind(appErr.Kind)
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"kind":   appErr.Kind,
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
	}

	c.AbortWithStatusJSON(status, ErrorBody{
		Error:   string(appErr.Kind),
		Message: appErr.Message,
		Details: appErr.Fields,
	})
}

func StatusForKind(kind ErrorKind) int {
	switch kind {
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindIDGenerationExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
