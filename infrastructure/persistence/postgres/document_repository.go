// Package postgres stores the site document as one JSONB row per key.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venus-backend/application/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	createDocumentsTableQuery = `
        CREATE TABLE IF NOT EXISTS site_documents (
            key        TEXT PRIMARY KEY,
            body       JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )
    `
	getDocumentQuery    = `SELECT body FROM site_documents WHERE key = $1`
	upsertDocumentQuery = `
        INSERT INTO site_documents (key, body, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET
            body = EXCLUDED.body,
            updated_at = EXCLUDED.updated_at
    `
)

// DBTX is the subset of pgx used by the repository. Both *pgxpool.Pool and
// pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Compile-time check to ensure DocumentRepository implements ports.DocumentRepository
var _ ports.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository keeps one document under a fixed key
type DocumentRepository struct {
	db     DBTX
	key    string
	logger *zap.Logger
}

// NewDocumentRepository creates a new Postgres document repository
func NewDocumentRepository(db DBTX, key string, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		key:    key,
		logger: logger.Named("document_repo"),
	}
}

// EnsureSchema creates the documents table if it does not exist
func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createDocumentsTableQuery); err != nil {
		return fmt.Errorf("failed to create site_documents table: %w", err)
	}
	return nil
}

// Get returns the stored document
func (r *DocumentRepository) Get(ctx context.Context) ([]byte, error) {
	var body []byte
	err := r.db.QueryRow(ctx, getDocumentQuery, r.key).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrDocumentNotFound
	}
	if err != nil {
		r.logger.Error("Error getting document", zap.Error(err), zap.String("key", r.key))
		return nil, fmt.Errorf("failed to get document %s: %w", r.key, err)
	}
	return body, nil
}

// Put replaces the stored document
func (r *DocumentRepository) Put(ctx context.Context, document []byte) error {
	// pgx encodes []byte as bytea; a string parameter is cast to JSONB
	if _, err := r.db.Exec(ctx, upsertDocumentQuery, r.key, string(document)); err != nil {
		r.logger.Error("Error saving document", zap.Error(err), zap.String("key", r.key))
		return fmt.Errorf("failed to save document %s: %w", r.key, err)
	}
	return nil
}

// PoolConfig configures the connection pool
type PoolConfig struct {
	URL             string
	MaxConns        int32
	MaxConnIdleTime time.Duration
}

// NewPool opens a connection pool and verifies it with a ping
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}
