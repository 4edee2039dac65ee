// Package pebble persists encoded stored blocks and their indexes in a pebble key-value store.
package pebble

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"
)

const cacheSize = 256 << 20

var (
	// ErrNotFound is returned when a requested height or pointer is not stored.
	ErrNotFound = errors.New("not found")
	// ErrHeightGap is returned when written blocks do not extend the stored tip contiguously.
	ErrHeightGap = errors.New("height does not extend tip")
	// ErrPointerMismatch is returned when a record's first pointer is not the next free pointer.
	ErrPointerMismatch = errors.New("first pointer is not the next free pointer")
	// ErrPointerSpaceExhausted is returned when allocation would exceed stored.MaxPointer.
	ErrPointerSpaceExhausted = errors.New("pointer space exhausted")
)

// Repository stores blocks, headers, the txid index and spent marks for one coin/network.
type Repository struct {
	db      *pebble.DB
	metrics Metrics
	// mu serializes writers so that tip and next pointer checks hold until commit.
	mu sync.Mutex
}

// Open opens or creates the store in dir.
func Open(dir string, logger *zap.Logger, metrics Metrics) (*Repository, error) {
	if dir == "" {
		return nil, errors.New("pebble data dir is required")
	}
	return open(dir, nil, logger, metrics)
}

// OpenWithFS opens the store on the given filesystem, typically vfs.NewMem() in tests.
func OpenWithFS(dir string, fs vfs.FS, logger *zap.Logger, metrics Metrics) (*Repository, error) {
	return open(dir, fs, logger, metrics)
}

func open(dir string, fs vfs.FS, logger *zap.Logger, metrics Metrics) (*Repository, error) {
	cache := pebble.NewCache(cacheSize)
	defer cache.Unref()

	opts := (&pebble.Options{
		Cache:        cache,
		BytesPerSync: 1 << 20,
		Logger:       logger.Named("pebble").Sugar(),
	}).EnsureDefaults()
	if fs != nil {
		opts.FS = fs
	}

	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", dir, err)
	}
	return &Repository{db: db, metrics: metrics}, nil
}

// Close flushes and closes the underlying store.
func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("close pebble: %w", err)
	}
	return nil
}

// get returns a copy of the value at key; found is false when the key is absent.
func (r *Repository) get(ctx context.Context, key []byte) (value []byte, found bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	val, closer, err := r.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close value: %w", cerr)
		}
	}()

	value = make([]byte, len(val))
	copy(value, val)
	return value, true, nil
}

func (r *Repository) observe(operation string, err error, started time.Time) {
	if r.metrics != nil {
		r.metrics.Observe(operation, err, started)
	}
}
