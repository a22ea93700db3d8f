// Package remote implements the client side of the remote document endpoint.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"venus-backend/domain/core/aggregates"
	apperrors "venus-backend/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	contentTypeJSON = "application/json"

	// maxDocumentSize caps how much of a response body is read
	maxDocumentSize = 10 << 20
)

var (
	// ErrUnexpectedStatus is returned for non-2xx responses
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrUnexpectedContentType is returned when a read does not declare JSON
	ErrUnexpectedContentType = errors.New("unexpected content type")

	// ErrEmptyDocument is returned when a read succeeds with an empty or null body
	ErrEmptyDocument = errors.New("empty document")
)

// BreakerConfig holds configuration for the circuit breaker guarding the endpoint
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// FailureThreshold and MinRequests decide when the breaker trips
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns a default configuration for the circuit breaker
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

// Config configures the HTTP store
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Breaker  BreakerConfig
}

// HTTPStore reads and replaces the full document on a single HTTP resource
type HTTPStore struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
}

// NewHTTPStore creates a new HTTP store. A nil client gets one with cfg.Timeout.
func NewHTTPStore(cfg Config, client *http.Client, logger *zap.Logger) *HTTPStore {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	logger = logger.Named("remote")

	breakerCfg := cfg.Breaker
	if breakerCfg.Name == "" {
		breakerCfg = DefaultBreakerConfig("remote-store")
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerCfg.Name,
		MaxRequests: breakerCfg.MaxRequests,
		Interval:    breakerCfg.Interval,
		Timeout:     breakerCfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < breakerCfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= breakerCfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &HTTPStore{
		endpoint: cfg.Endpoint,
		client:   client,
		breaker:  breaker,
		logger:   logger,
	}
}

// Endpoint returns the configured URL
func (s *HTTPStore) Endpoint() string {
	return s.endpoint
}

// Fetch reads the document. It succeeds only for a 2xx response that declares
// a JSON content type and carries a non-null JSON object. Failures are typed
// AppErrors; the sentinel errors above stay reachable through errors.Is.
func (s *HTTPStore) Fetch(ctx context.Context) (*aggregates.AppState, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return nil, s.classify("remote fetch", err)
	}
	return result.(*aggregates.AppState), nil
}

func (s *HTTPStore) fetch(ctx context.Context) (*aggregates.AppState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, contentTypeJSON) {
		drain(resp.Body)
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedContentType, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyDocument
	}

	return aggregates.Unmarshal(trimmed)
}

// Replace posts the full document
func (s *HTTPStore) Replace(ctx context.Context, state *aggregates.AppState) error {
	payload, err := state.Marshal()
	if err != nil {
		return err
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		return nil, s.replace(ctx, payload)
	})
	if err != nil {
		return s.classify("remote replace", err)
	}
	return nil
}

func (s *HTTPStore) replace(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// classify attaches an AppError type to a failed call. A response that arrived
// but could not be used is EXTERNAL.
func (s *HTTPStore) classify(operation string, err error) error {
	err = fmt.Errorf("%s %s: %w", operation, s.endpoint, err)

	var netErr net.Error
	var urlErr *url.Error
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return apperrors.NewUnavailableError("remote store").WithCause(err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return apperrors.NewTimeoutError(operation, err)
	case errors.As(err, &urlErr):
		return apperrors.NewNetworkError(operation+" failed", err)
	default:
		return apperrors.NewExternalError("remote store", err)
	}
}

// BreakerState reports the circuit breaker state
func (s *HTTPStore) BreakerState() string {
	return s.breaker.State().String()
}

func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDocumentSize))
}
