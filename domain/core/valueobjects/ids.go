package valueobjects

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator issues identifiers for new topics, stories, comments and bookings.
// Implementations must never return the same value twice within a process.
type IDGenerator interface {
	NewID() string
}

// IDSeeder is implemented by generators that must stay clear of ids already
// present in a loaded document
type IDSeeder interface {
	Observe(ids ...string)
}

// TimestampIDGenerator derives identifiers from the wall clock in milliseconds.
// When two ids are requested within the same millisecond (or the clock moves
// backwards) the previous value is bumped by one, so ids stay unique and increasing.
type TimestampIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewTimestampIDGenerator creates a generator backed by time.Now
func NewTimestampIDGenerator() *TimestampIDGenerator {
	return NewTimestampIDGeneratorWithClock(time.Now)
}

// NewTimestampIDGeneratorWithClock creates a generator with a custom clock
func NewTimestampIDGeneratorWithClock(now func() time.Time) *TimestampIDGenerator {
	return &TimestampIDGenerator{now: now}
}

// NewID returns the next identifier
func (g *TimestampIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := g.now().UnixMilli()
	if next <= g.last {
		next = g.last + 1
	}
	g.last = next
	return strconv.FormatInt(next, 10)
}

// Observe raises the floor of the generator to the largest numeric id given.
// Ids that are not base-10 integers are ignored. After a restart this keeps new
// ids above every id in the loaded document even if the wall clock went back.
func (g *TimestampIDGenerator) Observe(ids ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err == nil && n > g.last {
			g.last = n
		}
	}
}

// UUIDGenerator issues random UUIDv4 identifiers
type UUIDGenerator struct{}

// NewID returns a new random UUID string
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// IDStrategy names an IDGenerator implementation
type IDStrategy string

const (
	IDStrategyTimestamp IDStrategy = "timestamp"
	IDStrategyUUID      IDStrategy = "uuid"
)

// NewIDGenerator returns the generator for the named strategy
func NewIDGenerator(strategy IDStrategy) (IDGenerator, error) {
	switch strategy {
	case IDStrategyTimestamp, "":
		return NewTimestampIDGenerator(), nil
	case IDStrategyUUID:
		return UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
