package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/airbnb-listing-service/internal/application"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		subject string
		err     error
		status  int
		msg     string
	}{
		{"listing", repository.ErrNotFound, http.StatusNotFound, "listing not found"},
		{"user", fmt.Errorf("lookup: %w", repository.ErrNotFound), http.StatusNotFound, "user not found"},
		{"listing", repository.ErrDuplicate, http.StatusConflict, "listing already exists"},
		{"user", repository.ErrDuplicate, http.StatusConflict, "user already exists"},
		{"user", application.ErrUsernameTaken, http.StatusConflict, "username already taken"},
		{"listing", context.DeadlineExceeded, http.StatusGatewayTimeout, "request timed out"},
		{"listing", errors.New("server selection error: 10.0.0.3:27017"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		status, msg := statusFor(tc.subject, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.msg, msg, tc.err.Error())
	}
}
