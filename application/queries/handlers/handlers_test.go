package handlers

import (
	"context"
	"testing"

	"venus-backend/application/operations"
	"venus-backend/application/queries"
	"venus-backend/application/services"
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticReader struct {
	state *aggregates.AppState
}

func (r staticReader) Snapshot() (*aggregates.AppState, error) {
	if r.state == nil {
		return nil, services.ErrStateNotLoaded
	}
	return r.state, nil
}

func (r staticReader) GroundingContext() ([]services.GroundingTopic, error) {
	if r.state == nil {
		return nil, services.ErrStateNotLoaded
	}
	topics := make([]services.GroundingTopic, 0, len(r.state.Topics))
	for _, t := range r.state.Topics {
		topics = append(topics, services.GroundingTopic{Title: t.Title, Description: t.Description})
	}
	return topics, nil
}

func TestGetPublicSiteHandler_FiltersHiddenContent(t *testing.T) {
	state := aggregates.Seed()
	state = operations.AddComment(state, "s1", entities.Comment{ID: "c2", Name: "Eve", Text: "hidden soon", IsVisible: true})
	state = operations.ToggleCommentVisibility(state, "s1", "c2")
	state = operations.ToggleStoryVisibility(state, "s2")

	h := NewGetPublicSiteHandler(staticReader{state: state}, zap.NewNop())
	result, err := h.Handle(context.Background(), queries.GetPublicSiteQuery{})
	require.NoError(t, err)

	require.Len(t, result.Stories, 1)
	assert.Equal(t, "s1", result.Stories[0].ID)
	require.Len(t, result.Stories[0].Comments, 1)
	assert.Equal(t, "c1", result.Stories[0].Comments[0].ID)
	assert.Len(t, result.Topics, 4)
	assert.Equal(t, state.Settings, result.Settings)

	// hidden content stays in the document
	assert.Len(t, state.Stories, 2)
}

func TestGetPublicSiteHandler_NotLoaded(t *testing.T) {
	h := NewGetPublicSiteHandler(staticReader{}, zap.NewNop())
	_, err := h.Handle(context.Background(), queries.GetPublicSiteQuery{})
	assert.ErrorIs(t, err, services.ErrStateNotLoaded)
}

func TestGetAdminStateHandler_ReturnsSnapshot(t *testing.T) {
	state := operations.ToggleStoryVisibility(aggregates.Seed(), "s2")

	result, err := NewGetAdminStateHandler(staticReader{state: state}).Handle(context.Background(), queries.GetAdminStateQuery{})
	require.NoError(t, err)
	assert.Same(t, state, result.State)
}

func TestListBookingsHandler(t *testing.T) {
	state := aggregates.Seed()
	state = operations.SubmitBooking(state, entities.NewBooking("b1", "Ann", "a@example.com", "1", "2025-02-01", "t1"))
	state = operations.SubmitBooking(state, entities.NewBooking("b2", "Bo", "b@example.com", "2", "2025-02-02", "t2"))
	state = operations.SubmitBooking(state, entities.NewBooking("b3", "Cy", "c@example.com", "3", "2025-02-03", "t3"))
	state = operations.SetBookingStatus(state, "b2", entities.BookingConfirmed)
	state = operations.DeleteTopic(state, "t3")

	h := NewListBookingsHandler(staticReader{state: state}, zap.NewNop())

	tests := []struct {
		name   string
		status entities.BookingStatus
		ids    []string
		titles []string
	}{
		{
			name:   "all bookings in submission order",
			ids:    []string{"b1", "b2", "b3"},
			titles: []string{"Strategic Leadership in the AI Era", "Effective Communication Mastery", aggregates.UnknownTopicLabel},
		},
		{
			name:   "confirmed only",
			status: entities.BookingConfirmed,
			ids:    []string{"b2"},
			titles: []string{"Effective Communication Mastery"},
		},
		{
			name:   "no rejected bookings",
			status: entities.BookingRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.Handle(context.Background(), queries.ListBookingsQuery{Status: tt.status})
			require.NoError(t, err)

			var ids, titles []string
			for _, b := range result.Bookings {
				ids = append(ids, b.ID)
				titles = append(titles, b.TopicTitle)
			}
			assert.Equal(t, tt.ids, ids)
			assert.Equal(t, tt.titles, titles)
			assert.Equal(t, len(tt.ids), result.Total)
		})
	}
}

func TestListBookingsQuery_Validate(t *testing.T) {
	assert.NoError(t, queries.ListBookingsQuery{}.Validate())
	assert.NoError(t, queries.ListBookingsQuery{Status: entities.BookingPending}.Validate())
	assert.Error(t, queries.ListBookingsQuery{Status: "archived"}.Validate())
}

func TestGetGroundingContextHandler(t *testing.T) {
	state := operations.UpdateTopic(aggregates.Seed(), "t1", "Leading with AI", "New description", "https://example.com/x.jpg")

	result, err := NewGetGroundingContextHandler(staticReader{state: state}).Handle(context.Background(), queries.GetGroundingContextQuery{})
	require.NoError(t, err)

	require.Len(t, result.Topics, 4)
	assert.Equal(t, services.GroundingTopic{Title: "Leading with AI", Description: "New description"}, result.Topics[0])
}
