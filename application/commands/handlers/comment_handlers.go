package handlers

import (
	"context"

	"venus-backend/application/commands"
	"venus-backend/application/operations"
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"

	"go.uber.org/zap"
)

// AddCommentHandler handles AddCommentCommand
type AddCommentHandler struct {
	stateHandler
}

// NewAddCommentHandler creates a new add comment handler
func NewAddCommentHandler(state StateMutator, logger *zap.Logger) *AddCommentHandler {
	return &AddCommentHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the add comment command
func (h *AddCommentHandler) Handle(ctx context.Context, cmd commands.AddCommentCommand) error {
	comment := entities.NewComment(cmd.CommentID, cmd.Name, cmd.Email, cmd.Text, cmd.PostedAt)

	return h.mutate(OpAddComment, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.AddComment(s, cmd.StoryID, comment)
	}, zap.String("storyID", cmd.StoryID), zap.String("commentID", cmd.CommentID))
}

// ToggleCommentVisibilityHandler handles ToggleCommentVisibilityCommand
type ToggleCommentVisibilityHandler struct {
	stateHandler
}

// NewToggleCommentVisibilityHandler creates a new toggle comment visibility handler
func NewToggleCommentVisibilityHandler(state StateMutator, logger *zap.Logger) *ToggleCommentVisibilityHandler {
	return &ToggleCommentVisibilityHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the toggle comment visibility command
func (h *ToggleCommentVisibilityHandler) Handle(ctx context.Context, cmd commands.ToggleCommentVisibilityCommand) error {
	return h.mutate(OpToggleCommentVisibility, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.ToggleCommentVisibility(s, cmd.StoryID, cmd.CommentID)
	}, zap.String("storyID", cmd.StoryID), zap.String("commentID", cmd.CommentID))
}

// DeleteCommentHandler handles DeleteCommentCommand
type DeleteCommentHandler struct {
	stateHandler
}

// NewDeleteCommentHandler creates a new delete comment handler
func NewDeleteCommentHandler(state StateMutator, logger *zap.Logger) *DeleteCommentHandler {
	return &DeleteCommentHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the delete comment command
func (h *DeleteCommentHandler) Handle(ctx context.Context, cmd commands.DeleteCommentCommand) error {
	return h.mutate(OpDeleteComment, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.DeleteComment(s, cmd.StoryID, cmd.CommentID)
	}, zap.String("storyID", cmd.StoryID), zap.String("commentID", cmd.CommentID))
}
