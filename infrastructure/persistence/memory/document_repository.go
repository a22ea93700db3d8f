// Package memory provides an in-process document repository for development and tests.
package memory

import (
	"context"
	"sync"

	"venus-backend/application/ports"
)

// DocumentRepository keeps the document in memory
type DocumentRepository struct {
	mu  sync.RWMutex
	doc []byte
}

// NewDocumentRepository creates a new empty repository
func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

// Get returns a copy of the stored document
func (r *DocumentRepository) Get(ctx context.Context) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.doc == nil {
		return nil, ports.ErrDocumentNotFound
	}
	return append([]byte(nil), r.doc...), nil
}

// Put replaces the stored document
func (r *DocumentRepository) Put(ctx context.Context, document []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.doc = append([]byte{}, document...)
	return nil
}
