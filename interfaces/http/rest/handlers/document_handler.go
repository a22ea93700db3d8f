package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"venus-backend/application/ports"
	"venus-backend/pkg/common"
	apperrors "venus-backend/pkg/errors"

	"go.uber.org/zap"
)

// maxDocumentBytes caps the size of a stored document
const maxDocumentBytes = 10 << 20

// DocumentHandler serves the single document resource of the remote store
type DocumentHandler struct {
	repo   ports.DocumentRepository
	errors *apperrors.ErrorHandler
	logger *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(repo ports.DocumentRepository, errHandler *apperrors.ErrorHandler, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		repo:   repo,
		errors: errHandler,
		logger: logger,
	}
}

// GetDocument handles GET /api/document. The stored bytes are returned as is.
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	document, err := h.repo.Get(r.Context())
	if err != nil {
		if !errors.Is(err, ports.ErrDocumentNotFound) {
			h.logger.Error("Failed to read document", zap.Error(err))
		}
		h.errors.Handle(w, r, toAppError(err))
		return
	}

	if err := common.RespondRaw(w, http.StatusOK, document); err != nil {
		h.logger.Error("Failed to write document", zap.Error(err))
	}
}

// PutDocument handles POST and PUT /api/document, replacing the stored document
func (h *DocumentHandler) PutDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("Invalid request body: "+err.Error()))
		return
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil || object == nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("document must be a JSON object"))
		return
	}

	if err := h.repo.Put(r.Context(), body); err != nil {
		h.logger.Error("Failed to store document", zap.Error(err))
		h.errors.Handle(w, r, apperrors.NewDatabaseError("put document", err))
		return
	}

	h.logger.Debug("Document replaced", zap.Int("bytes", len(body)))
	if err := common.RespondJSON(w, http.StatusOK, nil); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
