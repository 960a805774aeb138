package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type emptyError struct{}

func (emptyError) Error() string { return "" }

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message wins", fmt.Errorf("list users: %w", FromStatus(http.StatusConflict, "email already registered")), "email already registered"},
		{"transport error text", stderrors.New("send request: dial tcp: connection refused"), "send request: dial tcp: connection refused"},
		{"app error without message uses generic", &AppError{Type: ErrorTypeInternal, Code: 500}, "generic"},
		{"empty error text uses generic", emptyError{}, "generic"},
		{"nil error uses generic", nil, "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err, "generic"))
		})
	}
}

func TestMessage_DefaultGeneric(t *testing.T) {
	assert.Equal(t, GenericMessage, Message(nil, ""))
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{http.StatusBadRequest, ErrorTypeValidation},
		{http.StatusUnauthorized, ErrorTypeUnauthorized},
		{http.StatusForbidden, ErrorTypeForbidden},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusConflict, ErrorTypeConflict},
		{http.StatusTooManyRequests, ErrorTypeRateLimited},
		{http.StatusServiceUnavailable, ErrorTypeUnavailable},
		{http.StatusTeapot, ErrorTypeBadRequest},
		{http.StatusInternalServerError, ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, "msg")
			assert.Equal(t, tt.want, err.Type)
			assert.Equal(t, tt.status, err.Code)
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(fmt.Errorf("wrapped: %w", FromStatus(http.StatusUnauthorized, ""))))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("login required")))
	assert.False(t, IsUnauthorized(NewNotFoundError("missing")))
	assert.False(t, IsUnauthorized(stderrors.New("plain")))
}
