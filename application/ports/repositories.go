package ports

import (
	"context"
	"errors"

	"venus-backend/domain/core/aggregates"
)

// ErrDocumentNotFound is returned by a DocumentRepository that holds no document yet
var ErrDocumentNotFound = errors.New("document not found")

// LoadSource tells where the initial snapshot came from
type LoadSource string

const (
	LoadSourceRemote LoadSource = "remote"
	LoadSourceCache  LoadSource = "cache"
	LoadSourceSeed   LoadSource = "seed"
)

// String returns the source name
func (s LoadSource) String() string {
	return string(s)
}

// SnapshotGateway defines the interface for loading and saving the whole site document.
// This is a port in hexagonal architecture - the controller doesn't know where the data lives.
type SnapshotGateway interface {
	// Load never fails: it falls back from the remote store to the cache and
	// finally to the seed document.
	Load(ctx context.Context) (*aggregates.AppState, LoadSource)

	// Save writes the durable cache first and then the remote store.
	// Only a cache failure is returned.
	Save(ctx context.Context, state *aggregates.AppState) error
}

// RemoteStore defines the interface for the remote document endpoint
type RemoteStore interface {
	// Fetch reads the full document
	Fetch(ctx context.Context) (*aggregates.AppState, error)

	// Replace writes the full document, replacing prior content
	Replace(ctx context.Context, state *aggregates.AppState) error
}

// DurableCache defines the interface for the local single-slot cache
type DurableCache interface {
	// Read returns the stored bytes. ok is false when the slot is empty.
	Read(ctx context.Context) (data []byte, ok bool, err error)

	// Write overwrites the slot wholesale
	Write(ctx context.Context, data []byte) error
}

// DocumentRepository defines the interface for the storage behind the remote
// document endpoint. Documents are opaque JSON objects.
type DocumentRepository interface {
	// Get returns the stored document or ErrDocumentNotFound
	Get(ctx context.Context) ([]byte, error)

	// Put replaces the stored document
	Put(ctx context.Context, document []byte) error
}

// HealthChecker is implemented by storage that can report its readiness
type HealthChecker interface {
	Ping(ctx context.Context) error
}
