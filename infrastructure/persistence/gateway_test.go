package persistence

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"venus-backend/application/operations"
	"venus-backend/application/ports"
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"
	"venus-backend/infrastructure/persistence/cache"
	"venus-backend/infrastructure/persistence/remote"
	apperrors "venus-backend/pkg/errors"
	"venus-backend/pkg/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// documentServer is a minimal remote endpoint holding one document
type documentServer struct {
	mu          sync.Mutex
	doc         []byte
	down        bool
	contentType string
	posts       int
}

func (s *documentServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.down {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	switch r.Method {
	case http.MethodGet:
		if s.doc == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		ct := s.contentType
		if ct == "" {
			ct = "application/json"
		}
		w.Header().Set("Content-Type", ct)
		_, _ = w.Write(s.doc)
	case http.MethodPost:
		s.posts++
		s.doc, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}
}

func (s *documentServer) setDown(down bool) {
	s.mu.Lock()
	s.down = down
	s.mu.Unlock()
}

func newRemote(t *testing.T, srv *documentServer) *remote.HTTPStore {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return remote.NewHTTPStore(remote.Config{
		Endpoint: ts.URL + "/api/document",
		Timeout:  time.Second,
		// never trips
		Breaker: remote.BreakerConfig{Name: "test", MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 2, MinRequests: 1000},
	}, nil, zap.NewNop())
}

func modified() *aggregates.AppState {
	state := operations.SubmitBooking(aggregates.Seed(), entities.NewBooking("b1", "Ann", "a@x.com", "555", "2024-07-01", "t2"))
	return operations.ToggleStoryVisibility(state, "s2")
}

type failingCache struct{}

func (failingCache) Read(ctx context.Context) ([]byte, bool, error) {
	return nil, false, errors.New("read denied")
}

func (failingCache) Write(ctx context.Context, data []byte) error {
	return errors.New("write denied")
}

type countingRemote struct {
	fetches  int
	replaces int
	err      error
}

func (r *countingRemote) Fetch(ctx context.Context) (*aggregates.AppState, error) {
	r.fetches++
	return nil, r.err
}

func (r *countingRemote) Replace(ctx context.Context, state *aggregates.AppState) error {
	r.replaces++
	return r.err
}

func TestGateway_LoadFromRemoteMirrorsIntoCache(t *testing.T) {
	doc, err := modified().Marshal()
	require.NoError(t, err)
	srv := &documentServer{doc: doc}
	c := cache.NewMemoryCache()
	metrics := observability.NewCollector("test")

	gw := NewGateway(newRemote(t, srv), c, zap.NewNop(), metrics)
	state, source := gw.Load(context.Background())

	assert.Equal(t, ports.LoadSourceRemote, source)
	assert.Equal(t, modified(), state)

	cached, ok, err := c.Read(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	fromCache, err := aggregates.Unmarshal(cached)
	require.NoError(t, err)
	assert.Equal(t, modified(), fromCache)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GatewayLoads.WithLabelValues("remote")))
}

func TestGateway_LoadFallsBackToCache(t *testing.T) {
	cachedDoc, err := modified().Marshal()
	require.NoError(t, err)

	tests := []struct {
		name string
		srv  *documentServer
	}{
		{"remote down", &documentServer{down: true}},
		{"remote empty", &documentServer{}},
		{"wrong content type", &documentServer{doc: []byte(`{"topics":[]}`), contentType: "text/html"}},
		{"malformed body", &documentServer{doc: []byte(`{"topics":`)}},
		{"null body", &documentServer{doc: []byte(`null`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cache.NewMemoryCache()
			require.NoError(t, c.Write(context.Background(), cachedDoc))

			state, source := NewGateway(newRemote(t, tt.srv), c, zap.NewNop(), nil).Load(context.Background())

			assert.Equal(t, ports.LoadSourceCache, source)
			assert.Equal(t, modified(), state)
		})
	}
}

func TestGateway_LoadFallsBackToSeed(t *testing.T) {
	tests := []struct {
		name  string
		cache ports.DurableCache
	}{
		{"empty cache", cache.NewMemoryCache()},
		{"unreadable cache", failingCache{}},
		{"corrupt cache", func() ports.DurableCache {
			c := cache.NewMemoryCache()
			_ = c.Write(context.Background(), []byte("not json"))
			return c
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, source := NewGateway(&countingRemote{err: errors.New("offline")}, tt.cache, zap.NewNop(), nil).Load(context.Background())

			assert.Equal(t, ports.LoadSourceSeed, source)
			assert.Equal(t, aggregates.Seed(), state)
			assert.Len(t, state.Topics, 4)
			assert.Len(t, state.Stories, 2)
			assert.Empty(t, state.Bookings)
		})
	}
}

func TestGateway_LoadWithoutRemote(t *testing.T) {
	state, source := NewGateway(nil, cache.NewMemoryCache(), zap.NewNop(), nil).Load(context.Background())

	assert.Equal(t, ports.LoadSourceSeed, source)
	assert.Equal(t, aggregates.Seed(), state)
}

func TestGateway_SaveWritesCacheThenRemote(t *testing.T) {
	srv := &documentServer{}
	c := cache.NewMemoryCache()
	gw := NewGateway(newRemote(t, srv), c, zap.NewNop(), nil)

	require.NoError(t, gw.Save(context.Background(), modified()))

	cached, ok, err := c.Read(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, string(cached), string(srv.doc))
	assert.Equal(t, 1, srv.posts)
}

func TestGateway_SaveSurvivesRemoteFailure(t *testing.T) {
	c := cache.NewMemoryCache()
	metrics := observability.NewCollector("test")
	gw := NewGateway(&countingRemote{err: errors.New("offline")}, c, zap.NewNop(), metrics)

	require.NoError(t, gw.Save(context.Background(), modified()))

	_, ok, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GatewaySaves.WithLabelValues("remote", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GatewaySaves.WithLabelValues("cache", "success")))
}

func TestGateway_SaveCacheFailureIsFatal(t *testing.T) {
	rs := &countingRemote{}
	gw := NewGateway(rs, failingCache{}, zap.NewNop(), nil)

	err := gw.Save(context.Background(), modified())

	assert.Error(t, err)
	assert.Equal(t, 0, rs.replaces, "remote must not be written when the cache write fails")
}

func TestGateway_RoundTrip(t *testing.T) {
	srv := &documentServer{}
	c := cache.NewMemoryCache()
	gw := NewGateway(newRemote(t, srv), c, zap.NewNop(), nil)
	x := modified()

	require.NoError(t, gw.Save(context.Background(), x))

	t.Run("remote reachable", func(t *testing.T) {
		state, source := gw.Load(context.Background())
		assert.Equal(t, ports.LoadSourceRemote, source)
		assert.Equal(t, x, state)
	})

	t.Run("remote down", func(t *testing.T) {
		srv.setDown(true)
		defer srv.setDown(false)

		state, source := gw.Load(context.Background())
		assert.Equal(t, ports.LoadSourceCache, source)
		assert.Equal(t, x, state)
	})
}

func TestGateway_RoundTripThroughFileCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir(), "venus_dialogics_db_v1", zap.NewNop())
	require.NoError(t, err)
	x := modified()

	require.NoError(t, NewGateway(nil, fc, zap.NewNop(), nil).Save(context.Background(), x))

	state, source := NewGateway(&countingRemote{err: errors.New("offline")}, fc, zap.NewNop(), nil).Load(context.Background())
	assert.Equal(t, ports.LoadSourceCache, source)
	assert.Equal(t, x, state)
}

func TestGateway_DegradedLogsCarryErrorType(t *testing.T) {
	srv := &documentServer{down: true}
	core, logs := observer.New(zap.WarnLevel)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	store := remote.NewHTTPStore(remote.Config{Endpoint: ts.URL, Timeout: time.Second}, nil, zap.NewNop())
	gw := NewGateway(store, cache.NewMemoryCache(), zap.New(core), nil)

	_, source := gw.Load(context.Background())
	assert.Equal(t, ports.LoadSourceSeed, source)
	require.NoError(t, gw.Save(context.Background(), modified()))

	entries := logs.FilterField(zap.String("error_type", string(apperrors.ErrorTypeExternal))).All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Remote store unavailable, falling back to local cache", entries[0].Message)
	assert.Equal(t, "Remote save failed, document kept in local cache", entries[1].Message)
}

func TestGateway_UntypedRemoteErrorsLogAsInternal(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	gw := NewGateway(&countingRemote{err: errors.New("offline")}, cache.NewMemoryCache(), zap.New(core), nil)

	gw.Load(context.Background())

	assert.Equal(t, 1, logs.FilterField(zap.String("error_type", string(apperrors.ErrorTypeInternal))).Len())
}
