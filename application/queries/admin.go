package queries

import (
	"fmt"

	"venus-backend/application/services"
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"
)

// GetAdminStateQuery asks for the whole document, hidden content included
type GetAdminStateQuery struct{}

// Validate validates the query
func (q GetAdminStateQuery) Validate() error {
	return nil
}

// AdminStateResult wraps the current snapshot. It must not be modified.
type AdminStateResult struct {
	State *aggregates.AppState `json:"state"`
}

// ListBookingsQuery lists bookings in submission order, optionally filtered by status
type ListBookingsQuery struct {
	Status entities.BookingStatus
}

// Validate validates the query
func (q ListBookingsQuery) Validate() error {
	if q.Status != "" && !q.Status.IsValid() {
		return fmt.Errorf("unknown booking status %q", q.Status)
	}
	return nil
}

// ListBookingsResult represents the result of listing bookings
type ListBookingsResult struct {
	Bookings []BookingView `json:"bookings"`
	Total    int           `json:"total"`
}

// BookingView is a booking with the title of its topic resolved.
// TopicTitle is "Unknown Topic" when the topic has been deleted.
type BookingView struct {
	entities.Booking
	TopicTitle string `json:"topicTitle"`
}

// GetGroundingContextQuery asks for the topic catalogue handed to the assistant
type GetGroundingContextQuery struct{}

// Validate validates the query
func (q GetGroundingContextQuery) Validate() error {
	return nil
}

// GroundingContextResult holds the ordered topic catalogue
type GroundingContextResult struct {
	Topics []services.GroundingTopic `json:"topics"`
}
