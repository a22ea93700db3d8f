// Package persistence implements the snapshot gateway: the remote store is the
// primary copy, the durable cache is the recovery copy and the seed document is
// the last resort.
package persistence

import (
	"context"
	"fmt"

	"venus-backend/application/ports"
	"venus-backend/domain/core/aggregates"
	apperrors "venus-backend/pkg/errors"
	"venus-backend/pkg/observability"

	"go.uber.org/zap"
)

// Compile-time check to ensure Gateway implements SnapshotGateway
var _ ports.SnapshotGateway = (*Gateway)(nil)

const (
	targetCache  = "cache"
	targetRemote = "remote"
)

// Gateway loads and saves the whole site document
type Gateway struct {
	remote  ports.RemoteStore
	cache   ports.DurableCache
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewGateway creates a new gateway. remote may be nil, in which case the
// gateway runs on the cache alone.
func NewGateway(remote ports.RemoteStore, cache ports.DurableCache, logger *zap.Logger, metrics *observability.Collector) *Gateway {
	return &Gateway{
		remote:  remote,
		cache:   cache,
		logger:  logger.Named("gateway"),
		metrics: metrics,
	}
}

// Load returns the remote document, else the cached one, else the seed.
// A remote document is written to the cache before it is returned.
func (g *Gateway) Load(ctx context.Context) (*aggregates.AppState, ports.LoadSource) {
	if state, ok := g.loadRemote(ctx); ok {
		return g.loaded(state, ports.LoadSourceRemote)
	}
	if state, ok := g.loadCache(ctx); ok {
		return g.loaded(state, ports.LoadSourceCache)
	}
	return g.loaded(aggregates.Seed(), ports.LoadSourceSeed)
}

func (g *Gateway) loaded(state *aggregates.AppState, source ports.LoadSource) (*aggregates.AppState, ports.LoadSource) {
	g.metrics.RecordLoad(source.String())
	g.logger.Info("Document loaded", zap.String("source", source.String()))
	return state, source
}

func (g *Gateway) loadRemote(ctx context.Context) (*aggregates.AppState, bool) {
	if g.remote == nil {
		return nil, false
	}

	state, err := g.remote.Fetch(ctx)
	if err != nil {
		g.logger.Warn("Remote store unavailable, falling back to local cache", zap.Error(err), errorType(err))
		return nil, false
	}

	if err := g.writeCache(ctx, state); err != nil {
		g.logger.Warn("Failed to mirror remote document into cache", zap.Error(err))
	}
	return state, true
}

func (g *Gateway) loadCache(ctx context.Context) (*aggregates.AppState, bool) {
	data, ok, err := g.cache.Read(ctx)
	if err != nil {
		g.logger.Warn("Failed to read local cache", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	state, err := aggregates.Unmarshal(data)
	if err != nil {
		g.logger.Warn("Local cache is corrupt, using seed document", zap.Error(err))
		return nil, false
	}
	return state, true
}

// Save writes the cache and then the remote store. A cache failure is
// returned and the remote write is skipped. A remote failure is logged only.
func (g *Gateway) Save(ctx context.Context, state *aggregates.AppState) error {
	if err := g.writeCache(ctx, state); err != nil {
		return err
	}

	if g.remote == nil {
		return nil
	}
	err := g.remote.Replace(ctx, state)
	g.metrics.RecordSave(targetRemote, err)
	if err != nil {
		g.logger.Warn("Remote save failed, document kept in local cache", zap.Error(err), errorType(err))
	}
	return nil
}

func (g *Gateway) writeCache(ctx context.Context, state *aggregates.AppState) error {
	data, err := state.Marshal()
	if err == nil {
		err = g.cache.Write(ctx, data)
	}
	g.metrics.RecordSave(targetCache, err)
	if err != nil {
		return fmt.Errorf("failed to write local cache: %w", err)
	}
	return nil
}

func errorType(err error) zap.Field {
	t := apperrors.TypeOf(err)
	if t == "" {
		t = apperrors.ErrorTypeInternal
	}
	return zap.String("error_type", string(t))
}
