package aggregates

import (
	"encoding/json"
	"fmt"

	"venus-backend/domain/core/entities"
)

// UnknownTopicLabel is rendered for bookings whose topic has been deleted
const UnknownTopicLabel = "Unknown Topic"

// AppState is the aggregate root holding the whole site document.
// It is persisted as one unit and treated as an immutable snapshot: operations
// build a new AppState and share every branch they did not touch.
type AppState struct {
	Settings entities.SiteSettings `json:"settings"`
	Topics   []entities.Topic      `json:"topics"`
	Stories  []entities.Story      `json:"stories"`
	Bookings []entities.Booking    `json:"bookings"`
}

// ShallowCopy returns a new AppState sharing all branches with s
func (s *AppState) ShallowCopy() *AppState {
	cp := *s
	return &cp
}

// FindTopic returns the index of the topic with the given id, or -1
func (s *AppState) FindTopic(topicID string) int {
	for i := range s.Topics {
		if s.Topics[i].ID == topicID {
			return i
		}
	}
	return -1
}

// FindStory returns the index of the story with the given id, or -1
func (s *AppState) FindStory(storyID string) int {
	for i := range s.Stories {
		if s.Stories[i].ID == storyID {
			return i
		}
	}
	return -1
}

// FindBooking returns the index of the booking with the given id, or -1
func (s *AppState) FindBooking(bookingID string) int {
	for i := range s.Bookings {
		if s.Bookings[i].ID == bookingID {
			return i
		}
	}
	return -1
}

// TopicTitle returns the title of the topic or UnknownTopicLabel when it no longer exists
func (s *AppState) TopicTitle(topicID string) string {
	if i := s.FindTopic(topicID); i >= 0 {
		return s.Topics[i].Title
	}
	return UnknownTopicLabel
}

// IDs lists every topic, story, comment and booking id in the document
func (s *AppState) IDs() []string {
	ids := make([]string, 0, len(s.Topics)+len(s.Stories)+len(s.Bookings))
	for _, t := range s.Topics {
		ids = append(ids, t.ID)
	}
	for _, st := range s.Stories {
		ids = append(ids, st.ID)
		for _, c := range st.Comments {
			ids = append(ids, c.ID)
		}
	}
	for _, b := range s.Bookings {
		ids = append(ids, b.ID)
	}
	return ids
}

// Normalize replaces nil sequences with empty ones so the document always
// serializes with arrays rather than nulls
func (s *AppState) Normalize() *AppState {
	if s.Topics == nil {
		s.Topics = []entities.Topic{}
	}
	if s.Stories == nil {
		s.Stories = []entities.Story{}
	}
	for i := range s.Stories {
		if s.Stories[i].Comments == nil {
			s.Stories[i].Comments = []entities.Comment{}
		}
	}
	if s.Bookings == nil {
		s.Bookings = []entities.Booking{}
	}
	return s
}

// Marshal serializes the document
func (s *AppState) Marshal() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal app state: %w", err)
	}
	return data, nil
}

// Unmarshal parses a serialized document. A JSON null is rejected.
func Unmarshal(data []byte) (*AppState, error) {
	var state *AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal app state: %w", err)
	}
	if state == nil {
		return nil, fmt.Errorf("app state document is null")
	}
	return state.Normalize(), nil
}
