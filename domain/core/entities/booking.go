package entities

import "fmt"

// BookingStatus represents the review state of a booking request.
// Every status can be reached from every other status.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
)

// IsValid checks if the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a raw string into a BookingStatus
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
	return status, nil
}

// Booking is a request to schedule a session on a topic.
// TopicID may point at a topic that no longer exists.
type Booking struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Date    string        `json:"date"`
	TopicID string        `json:"topicId"`
	Status  BookingStatus `json:"status"`
}

// NewBooking creates a pending booking
func NewBooking(id, name, email, phone, date, topicID string) Booking {
	return Booking{
		ID:      id,
		Name:    name,
		Email:   email,
		Phone:   phone,
		Date:    date,
		TopicID: topicID,
		Status:  BookingPending,
	}
}
