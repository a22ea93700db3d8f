// Package operations holds the pure state transitions applied to the site document.
//
// Every function takes the current snapshot and returns the next one. The input
// is never modified: touched branches are rebuilt, untouched branches are shared
// with the previous snapshot. A missing target id is a silent no-op and the
// input snapshot is returned as is; callers that need to know whether something
// changed compare the returned pointer with the input.
package operations

import (
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"
)

// AddComment appends a comment to the story's comment list
func AddComment(state *aggregates.AppState, storyID string, comment entities.Comment) *aggregates.AppState {
	i := state.FindStory(storyID)
	if i < 0 {
		return state
	}

	story := state.Stories[i]
	comments := make([]entities.Comment, len(story.Comments), len(story.Comments)+1)
	copy(comments, story.Comments)
	story.Comments = append(comments, comment)

	return withStory(state, i, story)
}

// SubmitBooking appends a booking request. The topic id is not checked.
func SubmitBooking(state *aggregates.AppState, booking entities.Booking) *aggregates.AppState {
	bookings := make([]entities.Booking, len(state.Bookings), len(state.Bookings)+1)
	copy(bookings, state.Bookings)

	next := state.ShallowCopy()
	next.Bookings = append(bookings, booking)
	return next
}

// ToggleStoryVisibility flips the story's visibility flag
func ToggleStoryVisibility(state *aggregates.AppState, storyID string) *aggregates.AppState {
	i := state.FindStory(storyID)
	if i < 0 {
		return state
	}

	story := state.Stories[i]
	story.IsVisible = !story.IsVisible
	return withStory(state, i, story)
}

// ToggleCommentVisibility flips the visibility flag of a comment nested in a story
func ToggleCommentVisibility(state *aggregates.AppState, storyID, commentID string) *aggregates.AppState {
	i := state.FindStory(storyID)
	if i < 0 {
		return state
	}
	story := state.Stories[i]
	j := story.FindComment(commentID)
	if j < 0 {
		return state
	}

	comments := make([]entities.Comment, len(story.Comments))
	copy(comments, story.Comments)
	comments[j].IsVisible = !comments[j].IsVisible
	story.Comments = comments

	return withStory(state, i, story)
}

// DeleteStory removes the story together with its comments
func DeleteStory(state *aggregates.AppState, storyID string) *aggregates.AppState {
	i := state.FindStory(storyID)
	if i < 0 {
		return state
	}

	stories := make([]entities.Story, 0, len(state.Stories)-1)
	stories = append(stories, state.Stories[:i]...)
	stories = append(stories, state.Stories[i+1:]...)

	next := state.ShallowCopy()
	next.Stories = stories
	return next
}

// DeleteTopic removes the topic. Bookings referencing it are left untouched.
func DeleteTopic(state *aggregates.AppState, topicID string) *aggregates.AppState {
	i := state.FindTopic(topicID)
	if i < 0 {
		return state
	}

	topics := make([]entities.Topic, 0, len(state.Topics)-1)
	topics = append(topics, state.Topics[:i]...)
	topics = append(topics, state.Topics[i+1:]...)

	next := state.ShallowCopy()
	next.Topics = topics
	return next
}

// SetBookingStatus overwrites the booking's status. Any status may follow any other.
func SetBookingStatus(state *aggregates.AppState, bookingID string, status entities.BookingStatus) *aggregates.AppState {
	i := state.FindBooking(bookingID)
	if i < 0 {
		return state
	}

	bookings := make([]entities.Booking, len(state.Bookings))
	copy(bookings, state.Bookings)
	bookings[i].Status = status

	next := state.ShallowCopy()
	next.Bookings = bookings
	return next
}

// CreateTopic appends a topic
func CreateTopic(state *aggregates.AppState, topic entities.Topic) *aggregates.AppState {
	topics := make([]entities.Topic, len(state.Topics), len(state.Topics)+1)
	copy(topics, state.Topics)

	next := state.ShallowCopy()
	next.Topics = append(topics, topic)
	return next
}

// UpdateSettings replaces the settings as a whole
func UpdateSettings(state *aggregates.AppState, settings entities.SiteSettings) *aggregates.AppState {
	next := state.ShallowCopy()
	next.Settings = settings
	return next
}

func withStory(state *aggregates.AppState, i int, story entities.Story) *aggregates.AppState {
	stories := make([]entities.Story, len(state.Stories))
	copy(stories, state.Stories)
	stories[i] = story

	next := state.ShallowCopy()
	next.Stories = stories
	return next
}
