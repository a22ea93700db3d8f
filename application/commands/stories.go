package commands

import "venus-backend/pkg/utils"

// CreateStoryCommand adds a testimonial
type CreateStoryCommand struct {
	StoryID string `json:"story_id" validate:"required"`
	Author  string `json:"author" validate:"required,max=100"`
	Role    string `json:"role" validate:"max=150"`
	Content string `json:"content" validate:"required,max=5000"`
}

// Validate validates the command
func (c CreateStoryCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// ToggleStoryVisibilityCommand hides or shows a story
type ToggleStoryVisibilityCommand struct {
	StoryID string `json:"story_id" validate:"required"`
}

// Validate validates the command
func (c ToggleStoryVisibilityCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteStoryCommand removes a story together with its comments
type DeleteStoryCommand struct {
	StoryID string `json:"story_id" validate:"required"`
}

// Validate validates the command
func (c DeleteStoryCommand) Validate() error {
	return utils.ValidateStruct(c)
}
