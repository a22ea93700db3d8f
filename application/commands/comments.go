package commands

import (
	"time"

	"venus-backend/pkg/utils"
)

// AddCommentCommand represents a visitor posting a comment under a story
type AddCommentCommand struct {
	CommentID string    `json:"comment_id" validate:"required"`
	StoryID   string    `json:"story_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=100"`
	Email     string    `json:"email" validate:"required,email,max=254"`
	Text      string    `json:"text" validate:"required,max=2000"`
	PostedAt  time.Time `json:"posted_at" validate:"required"`
}

// Validate validates the command
func (c AddCommentCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// ToggleCommentVisibilityCommand hides or shows a comment
type ToggleCommentVisibilityCommand struct {
	StoryID   string `json:"story_id" validate:"required"`
	CommentID string `json:"comment_id" validate:"required"`
}

// Validate validates the command
func (c ToggleCommentVisibilityCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteCommentCommand removes a comment for good
type DeleteCommentCommand struct {
	StoryID   string `json:"story_id" validate:"required"`
	CommentID string `json:"comment_id" validate:"required"`
}

// Validate validates the command
func (c DeleteCommentCommand) Validate() error {
	return utils.ValidateStruct(c)
}
