package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"venus-backend/application/ports"
	"venus-backend/domain/core/aggregates"
	"venus-backend/domain/core/valueobjects"
	"venus-backend/pkg/observability"

	"go.uber.org/zap"
)

var (
	// ErrStateNotLoaded is returned while the initial load has not completed
	ErrStateNotLoaded = errors.New("state not loaded yet")

	// ErrAlreadyInitialized is returned when Initialize is called a second time
	ErrAlreadyInitialized = errors.New("state controller already initialized")

	// ErrControllerClosed is returned for mutations after Close
	ErrControllerClosed = errors.New("state controller closed")
)

// Transition computes the next snapshot from the current one
type Transition func(current *aggregates.AppState) *aggregates.AppState

// GroundingTopic is one entry of the topic catalogue handed to the assistant
type GroundingTopic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StateController owns the current snapshot of the site document.
//
// Mutations replace the snapshot in memory first and persist it afterwards
// through a single-slot save queue. A failed save never rolls the snapshot back.
type StateController struct {
	gateway ports.SnapshotGateway
	logger  *zap.Logger
	metrics *observability.Collector
	queue   *saveQueue
	seeder  valueobjects.IDSeeder

	mu       sync.RWMutex
	state    *aggregates.AppState
	source   ports.LoadSource
	started  bool
	closed   bool
	loadedAt time.Time
}

// Option configures a StateController
type Option func(*StateController)

// WithIDSeeder makes Initialize hand every id of the loaded document to seeder
// before the first mutation is accepted
func WithIDSeeder(seeder valueobjects.IDSeeder) Option {
	return func(c *StateController) {
		c.seeder = seeder
	}
}

// NewStateController creates a new state controller. saveTimeout bounds each
// background save; zero means no bound.
func NewStateController(
	gateway ports.SnapshotGateway,
	saveTimeout time.Duration,
	logger *zap.Logger,
	metrics *observability.Collector,
	opts ...Option,
) *StateController {
	logger = logger.Named("state")
	c := &StateController{
		gateway: gateway,
		logger:  logger,
		metrics: metrics,
		queue:   newSaveQueue(gateway.Save, saveTimeout, logger, metrics),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize loads the document exactly once. Mutations are rejected until it returns.
func (c *StateController) Initialize(ctx context.Context) (ports.LoadSource, error) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return "", ErrAlreadyInitialized
	}
	c.started = true
	c.mu.Unlock()

	state, source := c.gateway.Load(ctx)
	if state == nil {
		state, source = aggregates.Seed(), ports.LoadSourceSeed
	}
	if c.seeder != nil {
		c.seeder.Observe(state.IDs()...)
	}

	c.mu.Lock()
	c.state = state
	c.source = source
	c.loadedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("Site document loaded",
		zap.String("source", source.String()),
		zap.Int("topics", len(state.Topics)),
		zap.Int("stories", len(state.Stories)),
		zap.Int("bookings", len(state.Bookings)),
	)
	return source, nil
}

// Ready reports whether the initial load has completed
func (c *StateController) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state != nil
}

// Source returns where the initial snapshot came from. Empty until loaded.
func (c *StateController) Source() ports.LoadSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

// LoadedAt returns when the initial snapshot was installed
func (c *StateController) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Snapshot returns the current snapshot. Callers must treat it as read-only.
func (c *StateController) Snapshot() (*aggregates.AppState, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state == nil {
		return nil, ErrStateNotLoaded
	}
	return c.state, nil
}

// Apply replaces the current snapshot and schedules it for saving.
// It returns before the save runs.
func (c *StateController) Apply(operation string, next *aggregates.AppState) error {
	if next == nil {
		return fmt.Errorf("apply %s: nil snapshot", operation)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkWritable(); err != nil {
		return err
	}
	c.install(operation, next)
	return nil
}

// Mutate runs the transition against the current snapshot and applies the
// result. A transition that returns its input unchanged is a no-op: nothing is
// applied and nothing is saved. Concurrent mutations are applied in the order
// they acquire the lock.
func (c *StateController) Mutate(operation string, fn Transition) (*aggregates.AppState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkWritable(); err != nil {
		return nil, err
	}

	current := c.state
	next := fn(current)
	if next == nil {
		return nil, fmt.Errorf("mutate %s: transition returned nil snapshot", operation)
	}
	if next == current {
		c.logger.Debug("Transition left the snapshot unchanged", zap.String("operation", operation))
		return current, nil
	}

	c.install(operation, next)
	return next, nil
}

// GroundingContext returns a copy of the current topic catalogue
func (c *StateController) GroundingContext() ([]GroundingTopic, error) {
	state, err := c.Snapshot()
	if err != nil {
		return nil, err
	}

	topics := make([]GroundingTopic, 0, len(state.Topics))
	for _, t := range state.Topics {
		topics = append(topics, GroundingTopic{Title: t.Title, Description: t.Description})
	}
	return topics, nil
}

// DroppedSaves returns how many pending snapshots were superseded before being saved
func (c *StateController) DroppedSaves() uint64 {
	return c.queue.dropped.Load()
}

// Close rejects further mutations and waits for the pending save to finish
func (c *StateController) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	if err := c.queue.close(ctx); err != nil {
		return fmt.Errorf("failed to drain save queue: %w", err)
	}
	c.logger.Info("State controller closed", zap.Uint64("saved", c.queue.saved.Load()), zap.Uint64("dropped", c.queue.dropped.Load()))
	return nil
}

// checkWritable must be called with mu held
func (c *StateController) checkWritable() error {
	if c.closed {
		return ErrControllerClosed
	}
	if c.state == nil {
		return ErrStateNotLoaded
	}
	return nil
}

// install must be called with mu held
func (c *StateController) install(operation string, next *aggregates.AppState) {
	c.state = next
	c.metrics.RecordApply(operation)

	// enqueue only fails after Close, which checkWritable already rejects
	c.queue.enqueue(next)
}
