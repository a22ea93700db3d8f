package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"venus-backend/application/commands/bus"
	"venus-backend/application/ports"
	"venus-backend/application/services"
	apperrors "venus-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		typ    apperrors.ErrorType
		status int
		code   string
	}{
		{
			name:   "validation",
			err:    fmt.Errorf("%w: %w", bus.ErrValidationFailed, errors.New("email is invalid")),
			typ:    apperrors.ErrorTypeValidation,
			status: http.StatusBadRequest,
		},
		{
			name:   "password",
			err:    services.ErrInvalidPassword,
			typ:    apperrors.ErrorTypeUnauthorized,
			status: http.StatusUnauthorized,
		},
		{
			name:   "not loaded",
			err:    fmt.Errorf("add_comment: %w", services.ErrStateNotLoaded),
			typ:    apperrors.ErrorTypeUnavailable,
			status: http.StatusServiceUnavailable,
			code:   "STATE_NOT_LOADED",
		},
		{
			name:   "closed",
			err:    services.ErrControllerClosed,
			typ:    apperrors.ErrorTypeUnavailable,
			status: http.StatusServiceUnavailable,
			code:   "SHUTTING_DOWN",
		},
		{
			name:   "missing document",
			err:    ports.ErrDocumentNotFound,
			typ:    apperrors.ErrorTypeNotFound,
			status: http.StatusNotFound,
		},
		{
			name:   "deadline",
			err:    fmt.Errorf("ask: %w", context.DeadlineExceeded),
			typ:    apperrors.ErrorTypeTimeout,
			status: http.StatusGatewayTimeout,
		},
		{
			name:   "anything else",
			err:    errors.New("boom"),
			typ:    apperrors.ErrorTypeInternal,
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperrors.GetAppError(toAppError(tt.err))
			require.NotNil(t, appErr)
			assert.Equal(t, tt.typ, appErr.Type)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
			assert.Equal(t, tt.code, appErr.Code)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestToAppError_KeepsTypedErrors(t *testing.T) {
	typed := apperrors.NewNotFoundError("story")
	assert.Same(t, typed, toAppError(typed))
}

func TestValidationMessage_DropsBusPrefix(t *testing.T) {
	err := fmt.Errorf("%w: %w", bus.ErrValidationFailed, errors.New("name is required"))
	assert.Equal(t, "name is required", validationMessage(err))
}
