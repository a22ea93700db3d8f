package operations

import (
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"
)

// CreateStory appends a new testimonial
func CreateStory(state *aggregates.AppState, story entities.Story) *aggregates.AppState {
	stories := make([]entities.Story, len(state.Stories), len(state.Stories)+1)
	copy(stories, state.Stories)

	next := state.ShallowCopy()
	next.Stories = append(stories, story)
	return next
}

// UpdateTopic replaces the editable fields of an existing topic, keeping its id
func UpdateTopic(state *aggregates.AppState, topicID, title, description, imageURL string) *aggregates.AppState {
	i := state.FindTopic(topicID)
	if i < 0 {
		return state
	}

	topics := make([]entities.Topic, len(state.Topics))
	copy(topics, state.Topics)
	topics[i] = entities.NewTopic(topicID, title, description, imageURL)

	next := state.ShallowCopy()
	next.Topics = topics
	return next
}

// DeleteComment removes a comment from a story
func DeleteComment(state *aggregates.AppState, storyID, commentID string) *aggregates.AppState {
	i := state.FindStory(storyID)
	if i < 0 {
		return state
	}
	story := state.Stories[i]
	j := story.FindComment(commentID)
	if j < 0 {
		return state
	}

	comments := make([]entities.Comment, 0, len(story.Comments)-1)
	comments = append(comments, story.Comments[:j]...)
	comments = append(comments, story.Comments[j+1:]...)
	story.Comments = comments

	return withStory(state, i, story)
}
