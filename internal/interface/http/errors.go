package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/airbnb-listing-service/internal/application"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
	"github.com/oksasatya/airbnb-listing-service/pkg/response"
)

// statusFor classifies err into an HTTP status and a client-safe message.
// subject names the record kind in not-found and conflict messages.
func statusFor(subject string, err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, subject + " not found"
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict, subject + " already exists"
	case errors.Is(err, application.ErrUsernameTaken):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, application.ErrInvalidListing):
		return http.StatusBadRequest, "invalid listing"
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, application.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, application.ErrStorageDisabled):
		return http.StatusServiceUnavailable, "image storage is not configured"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	}
	return http.StatusInternalServerError, "internal server error"
}

// writeError maps err onto the envelope; server-side failures are logged, not echoed
func writeError(c *gin.Context, logger logrus.FieldLogger, subject string, err error) {
	status, msg := statusFor(subject, err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
		}).Error("request failed")
	}
	response.Error(c, status, msg, nil)
}
