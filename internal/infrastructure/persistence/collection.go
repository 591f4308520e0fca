// Package persistence implements the embedded collection store. Each
// collection is one JSON file read fully on entry and atomically replaced
// on commit; a per-collection mutex makes read-modify-write cycles safe
// under concurrent requests.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"flightdesk-service/internal/domain/apperrors"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/pkg/metrics"
)

// Collection owns the durable representation of one named collection.
// It is the only component allowed to touch the collection's file.
type Collection[T any] struct {
	name    string
	path    string
	mu      sync.Mutex
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewCollection creates a store for the named collection backed by
// <dir>/<name>.json. The file is created lazily on first commit.
func NewCollection[T any](name, dir string, log logger.Logger, m *metrics.Metrics) *Collection[T] {
	return &Collection[T]{
		name:    name,
		path:    filepath.Join(dir, name+".json"),
		logger:  log,
		metrics: m,
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Update runs one commit cycle: load the collection, hand the snapshot to
// fn, and durably commit it if fn returns nil. If fn fails, the prior
// durable state is untouched. Calls to the same collection never interleave.
func (c *Collection[T]) Update(ctx context.Context, fn func(snapshot *[]T) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}
	if err := fn(&records); err != nil {
		return err
	}
	return c.commit(records)
}

// View runs fn against the current snapshot without committing. It takes
// the same lock as Update so readers always see a fully committed state.
func (c *Collection[T]) View(ctx context.Context, fn func(snapshot []T) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}
	return fn(records)
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", apperrors.ErrStoreUnavailable, c.name, err)
	}
	records, err := decodeRecords[T](data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return records, nil
}

// commit writes the encoded snapshot to a temp file in the same directory
// and renames it over the collection file. The rename is the single point
// of truth: a crash before it leaves the prior state intact.
func (c *Collection[T]) commit(records []T) error {
	start := time.Now()

	data, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("commit %s: %w", c.name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), c.name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: temp file for %s: %v", apperrors.ErrStoreUnavailable, c.name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", apperrors.ErrStoreUnavailable, c.name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", apperrors.ErrStoreUnavailable, c.name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", apperrors.ErrStoreUnavailable, c.name, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", apperrors.ErrStoreUnavailable, c.name, err)
	}

	if c.metrics != nil {
		c.metrics.StoreCommits.WithLabelValues(c.name).Inc()
		c.metrics.CommitDuration.Observe(time.Since(start).Seconds())
	}
	c.logger.Debug("Collection committed", "collection", c.name, "records", len(records))
	return nil
}
