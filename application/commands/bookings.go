package commands

import (
	"venus-backend/domain/core/entities"
	"venus-backend/pkg/utils"
)

// SubmitBookingCommand represents a visitor's booking request
type SubmitBookingCommand struct {
	BookingID string `json:"booking_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,max=40"`
	Date      string `json:"date" validate:"required,calendardate"`
	TopicID   string `json:"topic_id" validate:"required"`
}

// Validate validates the command
func (c SubmitBookingCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// SetBookingStatusCommand overwrites a booking's status
type SetBookingStatusCommand struct {
	BookingID string                 `json:"booking_id" validate:"required"`
	Status    entities.BookingStatus `json:"status" validate:"required,oneof=pending confirmed rejected"`
}

// Validate validates the command
func (c SetBookingStatusCommand) Validate() error {
	return utils.ValidateStruct(c)
}
