package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"venus-backend/application/operations"
	"venus-backend/application/ports"
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/entities"
	"venus-backend/domain/core/valueobjects"
	apperrors "venus-backend/pkg/errors"
	"venus-backend/pkg/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGateway records saved snapshots. When gate is set, the first Save
// signals entered and then waits for gate to close.
type fakeGateway struct {
	state  *aggregates.AppState
	source ports.LoadSource
	err    error

	gate    chan struct{}
	entered chan struct{}

	mu    sync.Mutex
	loads int
	saves []*aggregates.AppState
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{state: aggregates.Seed(), source: ports.LoadSourceCache}
}

func (g *fakeGateway) Load(ctx context.Context) (*aggregates.AppState, ports.LoadSource) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loads++
	return g.state, g.source
}

func (g *fakeGateway) Save(ctx context.Context, state *aggregates.AppState) error {
	g.mu.Lock()
	first := len(g.saves) == 0
	g.saves = append(g.saves, state)
	g.mu.Unlock()

	if first && g.gate != nil {
		close(g.entered)
		<-g.gate
	}
	return g.err
}

func (g *fakeGateway) saved() []*aggregates.AppState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*aggregates.AppState(nil), g.saves...)
}

func newController(t *testing.T, gw *fakeGateway, metrics *observability.Collector) *StateController {
	t.Helper()
	c := NewStateController(gw, time.Second, zap.NewNop(), metrics)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = c.Close(ctx)
	})
	return c
}

func addComment(id string) Transition {
	return func(s *aggregates.AppState) *aggregates.AppState {
		return operations.AddComment(s, "s1", entities.NewComment(id, "Ann", "a@x.com", "Great!", time.Now()))
	}
}

func TestStateController_RejectsBeforeInitialize(t *testing.T) {
	c := newController(t, newFakeGateway(), nil)

	_, err := c.Snapshot()
	assert.ErrorIs(t, err, ErrStateNotLoaded)

	_, err = c.Mutate("add_comment", addComment("c2"))
	assert.ErrorIs(t, err, ErrStateNotLoaded)

	err = c.Apply("replace", aggregates.Seed())
	assert.ErrorIs(t, err, ErrStateNotLoaded)

	_, err = c.GroundingContext()
	assert.ErrorIs(t, err, ErrStateNotLoaded)
	assert.False(t, c.Ready())
}

func TestStateController_InitializeOnce(t *testing.T) {
	gw := newFakeGateway()
	c := newController(t, gw, nil)
	assert.True(t, c.LoadedAt().IsZero())

	before := time.Now()
	source, err := c.Initialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ports.LoadSourceCache, source)
	assert.True(t, c.Ready())
	assert.Equal(t, ports.LoadSourceCache, c.Source())
	assert.False(t, c.LoadedAt().Before(before))

	_, err = c.Initialize(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Equal(t, 1, gw.loads)

	snap, err := c.Snapshot()
	require.NoError(t, err)
	assert.Same(t, gw.state, snap)
}

func TestStateController_ApplyIsOptimistic(t *testing.T) {
	gw := newFakeGateway()
	gw.gate = make(chan struct{})
	gw.entered = make(chan struct{})
	c := newController(t, gw, nil)
	_, err := c.Initialize(context.Background())
	require.NoError(t, err)

	next, err := c.Mutate("add_comment", addComment("c2"))
	require.NoError(t, err)

	// the save is still blocked, yet the snapshot is already visible
	<-gw.entered
	snap, err := c.Snapshot()
	require.NoError(t, err)
	assert.Same(t, next, snap)
	assert.Len(t, snap.Stories[0].Comments, 2)

	close(gw.gate)
}

func TestStateController_SaveFailureDoesNotRollBack(t *testing.T) {
	gw := newFakeGateway()
	gw.err = errors.New("disk full")
	c := newController(t, gw, nil)
	_, err := c.Initialize(context.Background())
	require.NoError(t, err)

	next, err := c.Mutate("toggle_story", func(s *aggregates.AppState) *aggregates.AppState {
		return operations.ToggleStoryVisibility(s, "s1")
	})
	require.NoError(t, err)
	require.NoError(t, c.Close(context.Background()))

	snap, err := c.Snapshot()
	require.NoError(t, err)
	assert.Same(t, next, snap)
	assert.False(t, snap.Stories[0].IsVisible)
	assert.Len(t, gw.saved(), 1)
}

func TestStateController_LatestSnapshotWins(t *testing.T) {
	gw := newFakeGateway()
	gw.gate = make(chan struct{})
	gw.entered = make(chan struct{})
	metrics := observability.NewCollector("test")
	c := newController(t, gw, metrics)
	_, err := c.Initialize(context.Background())
	require.NoError(t, err)

	first, err := c.Mutate("add_comment", addComment("c2"))
	require.NoError(t, err)
	<-gw.entered

	var last *aggregates.AppState
	for i := 3; i <= 5; i++ {
		last, err = c.Mutate("add_comment", addComment(fmt.Sprintf("c%d", i)))
		require.NoError(t, err)
	}

	close(gw.gate)
	require.NoError(t, c.Close(context.Background()))

	saves := gw.saved()
	require.Len(t, saves, 2)
	assert.Same(t, first, saves[0])
	assert.Same(t, last, saves[1])
	assert.Equal(t, uint64(2), c.DroppedSaves())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.SaveQueueDropped))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.SnapshotApplies.WithLabelValues("add_comment")))
}

func TestStateController_NoopTransitionSkipsSave(t *testing.T) {
	gw := newFakeGateway()
	c := newController(t, gw, nil)
	_, err := c.Initialize(context.Background())
	require.NoError(t, err)
	before, _ := c.Snapshot()

	got, err := c.Mutate("set_booking_status", func(s *aggregates.AppState) *aggregates.AppState {
		return operations.SetBookingStatus(s, "missing", entities.BookingConfirmed)
	})
	require.NoError(t, err)
	require.NoError(t, c.Close(context.Background()))

	assert.Same(t, before, got)
	assert.Empty(t, gw.saved())
}

func TestStateController_ApplySavesSnapshot(t *testing.T) {
	gw := newFakeGateway()
	c := newController(t, gw, nil)
	_, err := c.Initialize(context.Background())
	require.NoError(t, err)

	next := aggregates.Seed()
	next.Bookings = append(next.Bookings, entities.NewBooking("b1", "Ann", "a@x.com", "555", "2024-07-01", "t1"))
	require.NoError(t, c.Apply("replace", next))
	require.NoError(t, c.Close(context.Background()))

	require.Len(t, gw.saved(), 1)
	assert.Same(t, next, gw.saved()[0])
	assert.Error(t, c.Apply("replace", nil))
}

func TestStateController_RejectsAfterClose(t *testing.T) {
	c := newController(t, newFakeGateway(), nil)
	_, err := c.Initialize(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Close(context.Background()))

	_, err = c.Mutate("add_comment", addComment("c2"))
	assert.ErrorIs(t, err, ErrControllerClosed)

	_, err = c.Snapshot()
	assert.NoError(t, err)
}

func TestStateController_ConcurrentMutations(t *testing.T) {
	gw := newFakeGateway()
	c := newController(t, gw, nil)
	_, err := c.Initialize(context.Background())
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.Mutate("add_comment", addComment(fmt.Sprintf("cc%d", i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	require.NoError(t, c.Close(context.Background()))

	snap, err := c.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Stories[0].Comments, n+1)

	saves := gw.saved()
	require.NotEmpty(t, saves)
	assert.Same(t, snap, saves[len(saves)-1], "last save must be the final snapshot")
}

func TestStateController_GroundingContextIsACopy(t *testing.T) {
	c := newController(t, newFakeGateway(), nil)
	_, err := c.Initialize(context.Background())
	require.NoError(t, err)

	topics, err := c.GroundingContext()
	require.NoError(t, err)
	require.Len(t, topics, 4)
	assert.Equal(t, "Strategic Leadership in the AI Era", topics[0].Title)

	topics[0].Title = "changed"

	snap, _ := c.Snapshot()
	assert.Equal(t, "Strategic Leadership in the AI Era", snap.Topics[0].Title)

	_, err = c.Mutate("delete_topic", func(s *aggregates.AppState) *aggregates.AppState {
		return operations.DeleteTopic(s, "t1")
	})
	require.NoError(t, err)

	topics, err = c.GroundingContext()
	require.NoError(t, err)
	assert.Len(t, topics, 3)
}

func TestAdminAuthenticator(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		input   string
		wantErr bool
	}{
		{"match", "venus2024", "venus2024", false},
		{"mismatch", "venus2024", "wrong", true},
		{"empty input", "venus2024", "", true},
		{"empty secret never matches", "", "", true},
		{"case sensitive", "venus2024", "VENUS2024", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAdminAuthenticator(tt.secret).Authenticate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPassword)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassifySaveError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorType
	}{
		{"deadline", fmt.Errorf("failed to write local cache: %w", context.DeadlineExceeded), apperrors.ErrorTypeTimeout},
		{"cache write", errors.New("disk full"), apperrors.ErrorTypeDatabase},
		{"already typed", apperrors.NewNetworkError("down", nil), apperrors.ErrorTypeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifySaveError(tt.err)
			assert.Equal(t, tt.want, apperrors.TypeOf(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestStateController_InitializeSeedsIDGenerator(t *testing.T) {
	gw := newFakeGateway()
	loaded := operations.AddComment(gw.state, "s1",
		entities.NewComment("1700000000500", "Ann", "a@x.com", "Hi", time.Now()))
	gw.state = loaded

	// wall clock behind the ids already in the cached document
	ids := valueobjects.NewTimestampIDGeneratorWithClock(func() time.Time { return time.UnixMilli(1000) })
	c := NewStateController(gw, time.Second, zap.NewNop(), nil, WithIDSeeder(ids))
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	_, err := c.Initialize(context.Background())
	require.NoError(t, err)

	next := ids.NewID()
	assert.Equal(t, "1700000000501", next)
	assert.NotContains(t, loaded.IDs(), next)
}
