package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"venus-backend/domain/core/aggregates"
	apperrors "venus-backend/pkg/errors"
	"venus-backend/pkg/observability"

	"go.uber.org/zap"
)

// saveFunc persists one snapshot
type saveFunc func(ctx context.Context, state *aggregates.AppState) error

// saveQueue serializes outbound saves through a single pending slot.
// Only the latest snapshot waits; an older pending one is replaced and counted
// as dropped. One worker drains the slot so saves never overlap.
type saveQueue struct {
	save    saveFunc
	timeout time.Duration
	logger  *zap.Logger
	metrics *observability.Collector

	mu      sync.Mutex
	pending *aggregates.AppState
	closed  bool
	wake    chan struct{}
	done    chan struct{}

	dropped atomic.Uint64
	saved   atomic.Uint64
}

func newSaveQueue(save saveFunc, timeout time.Duration, logger *zap.Logger, metrics *observability.Collector) *saveQueue {
	q := &saveQueue{
		save:    save,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// enqueue puts the snapshot in the pending slot. It returns false once the
// queue is closed.
func (q *saveQueue) enqueue(state *aggregates.AppState) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	if q.pending != nil {
		q.dropped.Add(1)
		q.metrics.RecordDroppedSave()
	}
	q.pending = state

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

func (q *saveQueue) take() *aggregates.AppState {
	q.mu.Lock()
	defer q.mu.Unlock()

	state := q.pending
	q.pending = nil
	return state
}

func (q *saveQueue) run() {
	defer close(q.done)

	for range q.wake {
		for state := q.take(); state != nil; state = q.take() {
			q.persist(state)
		}
	}
}

func (q *saveQueue) persist(state *aggregates.AppState) {
	ctx := context.Background()
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	if err := q.save(ctx, state); err != nil {
		err = classifySaveError(err)
		q.logger.Error("Failed to persist snapshot",
			zap.Error(err),
			zap.String("error_type", string(apperrors.TypeOf(err))),
		)
		return
	}
	q.saved.Add(1)
}

// classifySaveError types an untyped save failure. Running past the save
// timeout is TIMEOUT, anything else is a DATABASE failure of the cache write.
func classifySaveError(err error) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError("save snapshot", err)
	default:
		return apperrors.NewDatabaseError("save snapshot", err)
	}
}

// close stops accepting snapshots and waits until the pending one is written
func (q *saveQueue) close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.wake)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
