package rest

import (
	"context"
	"net/http"
	"time"

	"venus-backend/application/ports"
	"venus-backend/interfaces/http/rest/handlers"
	"venus-backend/interfaces/http/rest/middleware"
	apperrors "venus-backend/pkg/errors"
	"venus-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// DocumentPath is where the document store serves its single resource
const DocumentPath = "/api/document"

// NewDocstoreRouter builds the router of the remote document store.
// health may be nil when the storage cannot be pinged.
func NewDocstoreRouter(
	repo ports.DocumentRepository,
	health ports.HealthChecker,
	metrics *observability.Collector,
	logger *zap.Logger,
) http.Handler {
	errHandler := apperrors.NewErrorHandler(logger, false)
	documents := handlers.NewDocumentHandler(repo, errHandler, logger)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(errHandler.Middleware)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(metrics))
	router.Use(cors.AllowAll().Handler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := health.Ping(ctx); err != nil {
				logger.Warn("Storage ping failed", zap.Error(err))
				errHandler.HandleStatus(w, r, http.StatusServiceUnavailable, "storage unavailable")
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	if metrics != nil {
		router.Handle("/metrics", metrics.Handler())
	}

	router.Get(DocumentPath, documents.GetDocument)
	router.Post(DocumentPath, documents.PutDocument)
	router.Put(DocumentPath, documents.PutDocument)

	return router
}
