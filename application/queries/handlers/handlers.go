package handlers

import (
	"context"
	"fmt"

	"venus-backend/application/queries"
	"venus-backend/application/services"
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"

	"go.uber.org/zap"
)

// SnapshotReader is the read side of the state controller
type SnapshotReader interface {
	Snapshot() (*aggregates.AppState, error)
	GroundingContext() ([]services.GroundingTopic, error)
}

// GetPublicSiteHandler renders the public view of the current snapshot
type GetPublicSiteHandler struct {
	state  SnapshotReader
	logger *zap.Logger
}

// NewGetPublicSiteHandler creates a new public site handler
func NewGetPublicSiteHandler(state SnapshotReader, logger *zap.Logger) *GetPublicSiteHandler {
	return &GetPublicSiteHandler{state: state, logger: logger}
}

// Handle executes the public site query
func (h *GetPublicSiteHandler) Handle(ctx context.Context, query queries.GetPublicSiteQuery) (*queries.PublicSiteResult, error) {
	state, err := h.state.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	stories := make([]queries.PublicStory, 0, len(state.Stories))
	for _, s := range state.Stories {
		if !s.IsVisible {
			continue
		}
		stories = append(stories, queries.PublicStory{
			ID:       s.ID,
			Author:   s.Author,
			Role:     s.Role,
			Content:  s.Content,
			Comments: s.VisibleComments(),
		})
	}

	return &queries.PublicSiteResult{
		Settings: state.Settings,
		Topics:   append([]entities.Topic{}, state.Topics...),
		Stories:  stories,
	}, nil
}

// GetAdminStateHandler returns the whole snapshot
type GetAdminStateHandler struct {
	state SnapshotReader
}

// NewGetAdminStateHandler creates a new admin state handler
func NewGetAdminStateHandler(state SnapshotReader) *GetAdminStateHandler {
	return &GetAdminStateHandler{state: state}
}

// Handle executes the admin state query
func (h *GetAdminStateHandler) Handle(ctx context.Context, query queries.GetAdminStateQuery) (*queries.AdminStateResult, error) {
	state, err := h.state.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return &queries.AdminStateResult{State: state}, nil
}

// ListBookingsHandler lists bookings with their topic titles resolved
type ListBookingsHandler struct {
	state  SnapshotReader
	logger *zap.Logger
}

// NewListBookingsHandler creates a new list bookings handler
func NewListBookingsHandler(state SnapshotReader, logger *zap.Logger) *ListBookingsHandler {
	return &ListBookingsHandler{state: state, logger: logger}
}

// Handle executes the list bookings query
func (h *ListBookingsHandler) Handle(ctx context.Context, query queries.ListBookingsQuery) (*queries.ListBookingsResult, error) {
	state, err := h.state.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	views := make([]queries.BookingView, 0, len(state.Bookings))
	orphaned := 0
	for _, b := range state.Bookings {
		if query.Status != "" && b.Status != query.Status {
			continue
		}
		if state.FindTopic(b.TopicID) < 0 {
			orphaned++
		}
		views = append(views, queries.BookingView{Booking: b, TopicTitle: state.TopicTitle(b.TopicID)})
	}

	if orphaned > 0 {
		h.logger.Debug("Bookings reference deleted topics", zap.Int("count", orphaned))
	}

	return &queries.ListBookingsResult{Bookings: views, Total: len(views)}, nil
}

// GetGroundingContextHandler returns the topic catalogue for the assistant
type GetGroundingContextHandler struct {
	state SnapshotReader
}

// NewGetGroundingContextHandler creates a new grounding context handler
func NewGetGroundingContextHandler(state SnapshotReader) *GetGroundingContextHandler {
	return &GetGroundingContextHandler{state: state}
}

// Handle executes the grounding context query
func (h *GetGroundingContextHandler) Handle(ctx context.Context, query queries.GetGroundingContextQuery) (*queries.GroundingContextResult, error) {
	topics, err := h.state.GroundingContext()
	if err != nil {
		return nil, fmt.Errorf("failed to read grounding context: %w", err)
	}
	return &queries.GroundingContextResult{Topics: topics}, nil
}
