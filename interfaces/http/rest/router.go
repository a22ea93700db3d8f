package rest

import (
	"net/http"
	"time"

	"venus-backend/application/ports"
	"venus-backend/domain/core/valueobjects"
	"venus-backend/interfaces/http/rest/handlers"
	"venus-backend/interfaces/http/rest/middleware"
	"venus-backend/pkg/common"
	apperrors "venus-backend/pkg/errors"
	"venus-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Readiness reports whether the initial document load has finished
type Readiness interface {
	Ready() bool
	Source() ports.LoadSource
	LoadedAt() time.Time
}

// Router creates and configures the HTTP router of the site API
type Router struct {
	commandBus  handlers.CommandSender
	queryBus    handlers.QueryAsker
	readiness   Readiness
	auth        handlers.Authenticator
	ids         valueobjects.IDGenerator
	metrics     *observability.Collector
	corsOrigins []string
	errors      *apperrors.ErrorHandler
	logger      *zap.Logger
}

// RouterDeps groups what the site API router needs
type RouterDeps struct {
	CommandBus  handlers.CommandSender
	QueryBus    handlers.QueryAsker
	Readiness   Readiness
	Auth        handlers.Authenticator
	IDs         valueobjects.IDGenerator
	Metrics     *observability.Collector // nil disables /metrics
	CORSOrigins []string
	Debug       bool
	Logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(deps RouterDeps) *Router {
	return &Router{
		commandBus:  deps.CommandBus,
		queryBus:    deps.QueryBus,
		readiness:   deps.Readiness,
		auth:        deps.Auth,
		ids:         deps.IDs,
		metrics:     deps.Metrics,
		corsOrigins: deps.CORSOrigins,
		errors:      apperrors.NewErrorHandler(deps.Logger, deps.Debug),
		logger:      deps.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errors.Middleware)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", middleware.AdminPasswordHeader},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	siteHandler := handlers.NewSiteHandler(rt.commandBus, rt.queryBus, rt.ids, rt.errors, rt.logger)
	adminHandler := handlers.NewAdminHandler(rt.commandBus, rt.queryBus, rt.auth, rt.ids, rt.errors, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/site", siteHandler.GetSite)
		r.Post("/stories/{storyID}/comments", siteHandler.AddComment)
		r.Post("/bookings", siteHandler.SubmitBooking)
		r.Get("/assistant/context", siteHandler.GetAssistantContext)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(rt.auth, rt.errors))

				r.Get("/state", adminHandler.GetState)
				r.Get("/bookings", adminHandler.ListBookings)
				r.Put("/bookings/{bookingID}/status", adminHandler.SetBookingStatus)
				r.Put("/settings", adminHandler.UpdateSettings)

				r.Post("/topics", adminHandler.CreateTopic)
				r.Put("/topics/{topicID}", adminHandler.UpdateTopic)
				r.Delete("/topics/{topicID}", adminHandler.DeleteTopic)

				r.Post("/stories", adminHandler.CreateStory)
				r.Post("/stories/{storyID}/visibility", adminHandler.ToggleStoryVisibility)
				r.Delete("/stories/{storyID}", adminHandler.DeleteStory)
				r.Post("/stories/{storyID}/comments/{commentID}/visibility", adminHandler.ToggleCommentVisibility)
				r.Delete("/stories/{storyID}/comments/{commentID}", adminHandler.DeleteComment)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck answers 503 until the initial load has finished
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if !rt.readiness.Ready() {
		rt.errors.HandleStatus(w, req, http.StatusServiceUnavailable, "site state not loaded yet")
		return
	}

	if err := common.RespondJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"source":   rt.readiness.Source().String(),
		"loadedAt": rt.readiness.LoadedAt().UTC().Format(time.RFC3339Nano),
	}); err != nil {
		rt.logger.Error("Failed to encode response", zap.Error(err))
	}
}
