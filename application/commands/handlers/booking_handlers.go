package handlers

import (
	"context"

	"venus-backend/application/commands"
	"venus-backend/application/operations"
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"

	"go.uber.org/zap"
)

// SubmitBookingHandler handles SubmitBookingCommand
type SubmitBookingHandler struct {
	stateHandler
}

// NewSubmitBookingHandler creates a new submit booking handler
func NewSubmitBookingHandler(state StateMutator, logger *zap.Logger) *SubmitBookingHandler {
	return &SubmitBookingHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the submit booking command
func (h *SubmitBookingHandler) Handle(ctx context.Context, cmd commands.SubmitBookingCommand) error {
	booking := entities.NewBooking(cmd.BookingID, cmd.Name, cmd.Email, cmd.Phone, cmd.Date, cmd.TopicID)

	return h.mutate(OpSubmitBooking, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.SubmitBooking(s, booking)
	}, zap.String("bookingID", cmd.BookingID), zap.String("topicID", cmd.TopicID))
}

// SetBookingStatusHandler handles SetBookingStatusCommand
type SetBookingStatusHandler struct {
	stateHandler
}

// NewSetBookingStatusHandler creates a new set booking status handler
func NewSetBookingStatusHandler(state StateMutator, logger *zap.Logger) *SetBookingStatusHandler {
	return &SetBookingStatusHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the set booking status command
func (h *SetBookingStatusHandler) Handle(ctx context.Context, cmd commands.SetBookingStatusCommand) error {
	return h.mutate(OpSetBookingStatus, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.SetBookingStatus(s, cmd.BookingID, cmd.Status)
	}, zap.String("bookingID", cmd.BookingID), zap.String("status", cmd.Status.String()))
}

// UpdateSettingsHandler handles UpdateSettingsCommand
type UpdateSettingsHandler struct {
	stateHandler
}

// NewUpdateSettingsHandler creates a new update settings handler
func NewUpdateSettingsHandler(state StateMutator, logger *zap.Logger) *UpdateSettingsHandler {
	return &UpdateSettingsHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the update settings command
func (h *UpdateSettingsHandler) Handle(ctx context.Context, cmd commands.UpdateSettingsCommand) error {
	settings := cmd.Settings()

	return h.mutate(OpUpdateSettings, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.UpdateSettings(s, settings)
	})
}
