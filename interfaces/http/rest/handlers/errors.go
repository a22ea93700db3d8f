package handlers

import (
	"context"
	"errors"
	"strings"

	"venus-backend/application/commands/bus"
	"venus-backend/application/ports"
	querybus "venus-backend/application/queries/bus"
	"venus-backend/application/services"
	apperrors "venus-backend/pkg/errors"
)

// toAppError maps application errors onto the HTTP error taxonomy
func toAppError(err error) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, bus.ErrValidationFailed), errors.Is(err, querybus.ErrValidationFailed):
		return apperrors.NewValidationError(validationMessage(err)).WithCause(err)
	case errors.Is(err, services.ErrInvalidPassword):
		return apperrors.NewUnauthorizedError("Invalid Password").WithCause(err)
	case errors.Is(err, services.ErrStateNotLoaded):
		return apperrors.NewUnavailableError("site state").WithCode("STATE_NOT_LOADED").WithCause(err)
	case errors.Is(err, services.ErrControllerClosed):
		return apperrors.NewUnavailableError("site state").WithCode("SHUTTING_DOWN").WithCause(err)
	case errors.Is(err, ports.ErrDocumentNotFound):
		return apperrors.NewNotFoundError("document").WithCause(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError("request", err)
	default:
		return apperrors.NewInternalError("request failed").WithCause(err)
	}
}

// validationMessage keeps the field messages and drops the bus prefixes
func validationMessage(err error) string {
	msg := err.Error()
	for _, prefix := range []string{bus.ErrValidationFailed.Error() + ": ", querybus.ErrValidationFailed.Error() + ": "} {
		if i := strings.Index(msg, prefix); i >= 0 {
			return msg[i+len(prefix):]
		}
	}
	return msg
}
