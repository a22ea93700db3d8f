// Package cache provides the local durable cache slot the gateway falls back to.
// Every implementation holds exactly one value under a fixed key and overwrites
// it wholesale on each write.
package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileCache stores the slot as a single file named after the key.
// Writes go to a temporary file that is renamed over the slot, so a reader
// never sees a partial document.
type FileCache struct {
	path   string
	logger *zap.Logger
}

// NewFileCache creates a new file cache in dir, creating dir if needed
func NewFileCache(dir, key string, logger *zap.Logger) (*FileCache, error) {
	if key == "" {
		return nil, errors.New("cache key is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &FileCache{
		path:   filepath.Join(dir, key+".json"),
		logger: logger.Named("file_cache"),
	}, nil
}

// Path returns the slot file path
func (c *FileCache) Path() string {
	return c.path
}

// Read returns the slot contents
func (c *FileCache) Read(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache file: %w", err)
	}
	return data, true, nil
}

// Write replaces the slot contents
func (c *FileCache) Write(ctx context.Context, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	c.logger.Debug("Cache slot written", zap.String("path", c.path), zap.Int("bytes", len(data)))
	return nil
}
