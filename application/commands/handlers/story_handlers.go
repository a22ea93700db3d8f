package handlers

import (
	"context"

	"venus-backend/application/commands"
	"venus-backend/application/operations"
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"

	"go.uber.org/zap"
)

// CreateStoryHandler handles CreateStoryCommand
type CreateStoryHandler struct {
	stateHandler
}

// NewCreateStoryHandler creates a new create story handler
func NewCreateStoryHandler(state StateMutator, logger *zap.Logger) *CreateStoryHandler {
	return &CreateStoryHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the create story command
func (h *CreateStoryHandler) Handle(ctx context.Context, cmd commands.CreateStoryCommand) error {
	story := entities.NewStory(cmd.StoryID, cmd.Author, cmd.Role, cmd.Content)

	return h.mutate(OpCreateStory, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.CreateStory(s, story)
	}, zap.String("storyID", cmd.StoryID))
}

// ToggleStoryVisibilityHandler handles ToggleStoryVisibilityCommand
type ToggleStoryVisibilityHandler struct {
	stateHandler
}

// NewToggleStoryVisibilityHandler creates a new toggle story visibility handler
func NewToggleStoryVisibilityHandler(state StateMutator, logger *zap.Logger) *ToggleStoryVisibilityHandler {
	return &ToggleStoryVisibilityHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the toggle story visibility command
func (h *ToggleStoryVisibilityHandler) Handle(ctx context.Context, cmd commands.ToggleStoryVisibilityCommand) error {
	return h.mutate(OpToggleStoryVisibility, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.ToggleStoryVisibility(s, cmd.StoryID)
	}, zap.String("storyID", cmd.StoryID))
}

// DeleteStoryHandler handles DeleteStoryCommand
type DeleteStoryHandler struct {
	stateHandler
}

// NewDeleteStoryHandler creates a new delete story handler
func NewDeleteStoryHandler(state StateMutator, logger *zap.Logger) *DeleteStoryHandler {
	return &DeleteStoryHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the delete story command
func (h *DeleteStoryHandler) Handle(ctx context.Context, cmd commands.DeleteStoryCommand) error {
	return h.mutate(OpDeleteStory, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.DeleteStory(s, cmd.StoryID)
	}, zap.String("storyID", cmd.StoryID))
}
