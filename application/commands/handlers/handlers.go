// Package handlers runs each command as one operation against the state controller.
// A command whose target no longer exists completes without error and without
// changing the snapshot.
package handlers

import (
	"fmt"

	"venus-backend/application/services"
	"venus-backend/domain/core/aggregates"

	"go.uber.org/zap"
)

// Operation names, also used as metric labels
const (
	OpAddComment              = "add_comment"
	OpToggleCommentVisibility = "toggle_comment_visibility"
	OpDeleteComment           = "delete_comment"
	OpCreateStory             = "create_story"
	OpToggleStoryVisibility   = "toggle_story_visibility"
	OpDeleteStory             = "delete_story"
	OpCreateTopic             = "create_topic"
	OpUpdateTopic             = "update_topic"
	OpDeleteTopic             = "delete_topic"
	OpSubmitBooking           = "submit_booking"
	OpSetBookingStatus        = "set_booking_status"
	OpUpdateSettings          = "update_settings"
)

// StateMutator is the part of the state controller command handlers need
type StateMutator interface {
	Mutate(operation string, fn services.Transition) (*aggregates.AppState, error)
}

// stateHandler holds what every handler shares
type stateHandler struct {
	state  StateMutator
	logger *zap.Logger
}

func (h stateHandler) mutate(operation string, fn services.Transition, fields ...zap.Field) error {
	if _, err := h.state.Mutate(operation, fn); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	h.logger.Debug("Operation applied", append(fields, zap.String("operation", operation))...)
	return nil
}
