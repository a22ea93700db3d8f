package handlers

import (
	"net/http"

	"venus-backend/application/commands"
	"venus-backend/application/commands/bus"
	"venus-backend/application/queries"
	"venus-backend/domain/core/entities"
	"venus-backend/domain/core/valueobjects"
	"venus-backend/pkg/common"
	apperrors "venus-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Authenticator checks the administrator secret
type Authenticator interface {
	Authenticate(input string) error
}

// AdminHandler serves the administrator views. Every route except Login sits
// behind the admin password middleware.
type AdminHandler struct {
	commandBus CommandSender
	queryBus   QueryAsker
	auth       Authenticator
	ids        valueobjects.IDGenerator
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	commandBus CommandSender,
	queryBus QueryAsker,
	auth Authenticator,
	ids valueobjects.IDGenerator,
	errHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		auth:       auth,
		ids:        ids,
		errors:     errHandler,
		logger:     logger,
	}
}

// LoginRequest represents the request body for the admin login
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse confirms the password matched. No token is issued.
type LoginResponse struct {
	Authenticated bool `json:"authenticated"`
}

// TopicRequest represents the request body for creating or updating a topic
type TopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// StoryRequest represents the request body for creating a story
type StoryRequest struct {
	Author  string `json:"author"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BookingStatusRequest represents the request body for a status change
type BookingStatusRequest struct {
	Status string `json:"status"`
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("Invalid request body: "+err.Error()))
		return
	}

	if err := h.auth.Authenticate(req.Password); err != nil {
		h.logger.Warn("Admin login rejected", zap.String("remoteAddr", r.RemoteAddr))
		h.errors.Handle(w, r, toAppError(err))
		return
	}
	h.respondJSON(w, http.StatusOK, LoginResponse{Authenticated: true})
}

// GetState handles GET /admin/state
func (h *AdminHandler) GetState(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetAdminStateQuery{})
	if err != nil {
		h.errors.Handle(w, r, toAppError(err))
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// ListBookings handles GET /admin/bookings?status=
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := queries.ListBookingsQuery{
		Status: entities.BookingStatus(r.URL.Query().Get("status")),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, toAppError(err))
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// CreateTopic handles POST /admin/topics
func (h *AdminHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req TopicRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := commands.CreateTopicCommand{
		TopicID:     h.ids.NewID(),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	h.send(w, r, cmd, http.StatusCreated, CreatedResponse{ID: cmd.TopicID})
}

// UpdateTopic handles PUT /admin/topics/{topicID}
func (h *AdminHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	var req TopicRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.send(w, r, commands.UpdateTopicCommand{
		TopicID:     chi.URLParam(r, "topicID"),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}, http.StatusOK, nil)
}

// DeleteTopic handles DELETE /admin/topics/{topicID}
func (h *AdminHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, commands.DeleteTopicCommand{TopicID: chi.URLParam(r, "topicID")}, http.StatusOK, nil)
}

// CreateStory handles POST /admin/stories
func (h *AdminHandler) CreateStory(w http.ResponseWriter, r *http.Request) {
	var req StoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := commands.CreateStoryCommand{
		StoryID: h.ids.NewID(),
		Author:  req.Author,
		Role:    req.Role,
		Content: req.Content,
	}
	h.send(w, r, cmd, http.StatusCreated, CreatedResponse{ID: cmd.StoryID})
}

// ToggleStoryVisibility handles POST /admin/stories/{storyID}/visibility
func (h *AdminHandler) ToggleStoryVisibility(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, commands.ToggleStoryVisibilityCommand{StoryID: chi.URLParam(r, "storyID")}, http.StatusOK, nil)
}

// DeleteStory handles DELETE /admin/stories/{storyID}
func (h *AdminHandler) DeleteStory(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, commands.DeleteStoryCommand{StoryID: chi.URLParam(r, "storyID")}, http.StatusOK, nil)
}

// ToggleCommentVisibility handles POST /admin/stories/{storyID}/comments/{commentID}/visibility
func (h *AdminHandler) ToggleCommentVisibility(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, commands.ToggleCommentVisibilityCommand{
		StoryID:   chi.URLParam(r, "storyID"),
		CommentID: chi.URLParam(r, "commentID"),
	}, http.StatusOK, nil)
}

// DeleteComment handles DELETE /admin/stories/{storyID}/comments/{commentID}
func (h *AdminHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, commands.DeleteCommentCommand{
		StoryID:   chi.URLParam(r, "storyID"),
		CommentID: chi.URLParam(r, "commentID"),
	}, http.StatusOK, nil)
}

// SetBookingStatus handles PUT /admin/bookings/{bookingID}/status
func (h *AdminHandler) SetBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req BookingStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.send(w, r, commands.SetBookingStatusCommand{
		BookingID: chi.URLParam(r, "bookingID"),
		Status:    entities.BookingStatus(req.Status),
	}, http.StatusOK, nil)
}

// UpdateSettings handles PUT /admin/settings
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req entities.SiteSettings
	if !h.decode(w, r, &req) {
		return
	}

	h.send(w, r, commands.UpdateSettingsCommand{
		HeroTitle:      req.HeroTitle,
		HeroSubtitle:   req.HeroSubtitle,
		HeroImage:      req.HeroImage,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		ContactAddress: req.ContactAddress,
	}, http.StatusOK, nil)
}

// Helper methods

func (h *AdminHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.ParseJSONBody(w, r, v, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// send dispatches cmd and answers as soon as the snapshot has been replaced
func (h *AdminHandler) send(w http.ResponseWriter, r *http.Request, cmd bus.Command, status int, data interface{}) {
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, toAppError(err))
		return
	}
	h.respondJSON(w, status, data)
}

func (h *AdminHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := common.RespondJSON(w, status, data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
