// Package repository holds published ranking boards in memory. A board is
// replaced wholesale on each pipeline run and served lock-free to readers
// between runs.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/swishlab/hooprank/pkg/metrics"
)

// Board is an immutable-between-runs ranking snapshot.
//
// Ordering is whatever the producing model emitted (best first). Reads are
// cheap; Replace swaps the whole snapshot under a write lock.
type Board[T any] struct {
	name string
	key  func(T) string

	mu        sync.RWMutex
	rows      []T
	index     map[string]int
	version   string
	updatedAt time.Time
}

// Option applies a configuration option to the Board.
type Option[T any] func(*Board[T])

// NewBoard builds an empty board. key extracts the lookup key of a row
// (team or player name).
func NewBoard[T any](name string, key func(T) string, opts ...Option[T]) *Board[T] {
	b := &Board[T]{
		name: name,
		key:  key,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the board name.
func (b *Board[T]) Name() string { return b.name }

// Replace publishes a new snapshot, replacing the previous one wholesale.
// version tags the producing pipeline run.
func (b *Board[T]) Replace(ctx context.Context, rows []T, version string) {
	index := make(map[string]int, len(rows))
	for i, r := range rows {
		index[b.key(r)] = i
	}

	b.mu.Lock()
	b.rows = rows
	b.index = index
	b.version = version
	b.updatedAt = time.Now()
	b.mu.Unlock()

	metrics.UpdateEntitiesRanked(b.name, len(rows))
}

// TopN returns the first n rows. Returns ErrInvalidLimit when n is not
// positive and ErrEmptyBoard before the first Replace.
func (b *Board[T]) TopN(ctx context.Context, n int) ([]T, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.rows) == 0 {
		return nil, ErrEmptyBoard
	}
	if n > len(b.rows) {
		n = len(b.rows)
	}
	out := make([]T, n)
	copy(out, b.rows[:n])
	return out, nil
}

// Get returns the row for a key. Returns ErrNotFound for unknown keys.
func (b *Board[T]) Get(ctx context.Context, key string) (T, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var zero T
	i, ok := b.index[key]
	if !ok {
		return zero, ErrNotFound
	}
	return b.rows[i], nil
}

// All returns a copy of the full snapshot.
func (b *Board[T]) All(ctx context.Context) []T {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]T, len(b.rows))
	copy(out, b.rows)
	return out
}

// Count returns the number of rows in the current snapshot.
func (b *Board[T]) Count(ctx context.Context) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.rows)
}

// Version returns the pipeline run tag of the current snapshot.
func (b *Board[T]) Version() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// UpdatedAt returns when the current snapshot was published.
func (b *Board[T]) UpdatedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updatedAt
}
