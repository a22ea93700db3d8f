package handlers

import (
	"context"

	"venus-backend/application/commands"
	"venus-backend/application/operations"
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"

	"go.uber.org/zap"
)

// CreateTopicHandler handles CreateTopicCommand
type CreateTopicHandler struct {
	stateHandler
}

// NewCreateTopicHandler creates a new create topic handler
func NewCreateTopicHandler(state StateMutator, logger *zap.Logger) *CreateTopicHandler {
	return &CreateTopicHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the create topic command
func (h *CreateTopicHandler) Handle(ctx context.Context, cmd commands.CreateTopicCommand) error {
	topic := entities.NewTopic(cmd.TopicID, cmd.Title, cmd.Description, cmd.ImageURL)

	return h.mutate(OpCreateTopic, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.CreateTopic(s, topic)
	}, zap.String("topicID", cmd.TopicID))
}

// UpdateTopicHandler handles UpdateTopicCommand
type UpdateTopicHandler struct {
	stateHandler
}

// NewUpdateTopicHandler creates a new update topic handler
func NewUpdateTopicHandler(state StateMutator, logger *zap.Logger) *UpdateTopicHandler {
	return &UpdateTopicHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the update topic command
func (h *UpdateTopicHandler) Handle(ctx context.Context, cmd commands.UpdateTopicCommand) error {
	return h.mutate(OpUpdateTopic, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.UpdateTopic(s, cmd.TopicID, cmd.Title, cmd.Description, cmd.ImageURL)
	}, zap.String("topicID", cmd.TopicID))
}

// DeleteTopicHandler handles DeleteTopicCommand
type DeleteTopicHandler struct {
	stateHandler
}

// NewDeleteTopicHandler creates a new delete topic handler
func NewDeleteTopicHandler(state StateMutator, logger *zap.Logger) *DeleteTopicHandler {
	return &DeleteTopicHandler{stateHandler{state: state, logger: logger}}
}

// Handle executes the delete topic command
func (h *DeleteTopicHandler) Handle(ctx context.Context, cmd commands.DeleteTopicCommand) error {
	return h.mutate(OpDeleteTopic, func(s *aggregates.AppState) *aggregates.AppState {
		return operations.DeleteTopic(s, cmd.TopicID)
	}, zap.String("topicID", cmd.TopicID))
}
