package handlers

import (
	"context"
	"net/http"
	"time"

	"venus-backend/application/commands"
	"venus-backend/application/commands/bus"
	"venus-backend/application/queries"
	querybus "venus-backend/application/queries/bus"
	"venus-backend/domain/core/valueobjects"
	"venus-backend/pkg/common"
	apperrors "venus-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies on the site API
const maxBodyBytes = 1 << 20

// CommandSender dispatches commands
type CommandSender interface {
	Send(ctx context.Context, cmd bus.Command) error
}

// QueryAsker dispatches queries
type QueryAsker interface {
	Ask(ctx context.Context, query querybus.Query) (interface{}, error)
}

// CreatedResponse carries the identifier assigned to a new record
type CreatedResponse struct {
	ID string `json:"id"`
}

// SiteHandler serves the public pages of the site
type SiteHandler struct {
	commandBus CommandSender
	queryBus   QueryAsker
	ids        valueobjects.IDGenerator
	now        func() time.Time
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(
	commandBus CommandSender,
	queryBus QueryAsker,
	ids valueobjects.IDGenerator,
	errHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *SiteHandler {
	return &SiteHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		ids:        ids,
		now:        time.Now,
		errors:     errHandler,
		logger:     logger,
	}
}

// AddCommentRequest represents the request body for posting a comment
type AddCommentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Text  string `json:"text"`
}

// SubmitBookingRequest represents the request body for a booking
type SubmitBookingRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	TopicID string `json:"topicId"`
}

// GetSite handles GET /site
func (h *SiteHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetPublicSiteQuery{})
	if err != nil {
		h.errors.Handle(w, r, toAppError(err))
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// AddComment handles POST /stories/{storyID}/comments
func (h *SiteHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("Invalid request body: "+err.Error()))
		return
	}

	cmd := commands.AddCommentCommand{
		CommentID: h.ids.NewID(),
		StoryID:   chi.URLParam(r, "storyID"),
		Name:      req.Name,
		Email:     req.Email,
		Text:      req.Text,
		PostedAt:  h.now(),
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, toAppError(err))
		return
	}
	h.respondJSON(w, http.StatusCreated, CreatedResponse{ID: cmd.CommentID})
}

// SubmitBooking handles POST /bookings
func (h *SiteHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("Invalid request body: "+err.Error()))
		return
	}

	cmd := commands.SubmitBookingCommand{
		BookingID: h.ids.NewID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		TopicID:   req.TopicID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, toAppError(err))
		return
	}

	h.logger.Info("Booking submitted", zap.String("bookingID", cmd.BookingID), zap.String("topicID", cmd.TopicID))
	h.respondJSON(w, http.StatusCreated, CreatedResponse{ID: cmd.BookingID})
}

// GetAssistantContext handles GET /assistant/context
func (h *SiteHandler) GetAssistantContext(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetGroundingContextQuery{})
	if err != nil {
		h.errors.Handle(w, r, toAppError(err))
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *SiteHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := common.RespondJSON(w, status, data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
