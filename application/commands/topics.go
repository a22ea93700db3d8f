package commands

import "venus-backend/pkg/utils"

// CreateTopicCommand adds a training topic to the catalogue
type CreateTopicCommand struct {
	TopicID     string `json:"topic_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	ImageURL    string `json:"image_url" validate:"required,url"`
}

// Validate validates the command
func (c CreateTopicCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateTopicCommand replaces the editable fields of a topic
type UpdateTopicCommand struct {
	TopicID     string `json:"topic_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	ImageURL    string `json:"image_url" validate:"required,url"`
}

// Validate validates the command
func (c UpdateTopicCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteTopicCommand removes a topic. Bookings keep their topic id.
type DeleteTopicCommand struct {
	TopicID string `json:"topic_id" validate:"required"`
}

// Validate validates the command
func (c DeleteTopicCommand) Validate() error {
	return utils.ValidateStruct(c)
}
