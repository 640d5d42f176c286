// Package state holds the client-side state containers: session and
// authorization state, the generic remote-collection pattern, and its
// member, movie, and data-grid specializations. Stores are constructed
// once at application start and injected into consumers; there are no
// package-level singletons.
package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jspark-dev/cinegrid/internal/api"
	"github.com/jspark-dev/cinegrid/internal/domain"
)

// Fetcher loads a remote collection.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// call is one in-flight fetch; joiners wait on done and share the result.
type call[T any] struct {
	done  chan struct{}
	items []T
	err   error
}

// Collection is the uniform loading/error/data shape every remote list
// binds to: a fetched collection, a loading flag, an error slot, and a
// last-refresh timestamp. Fetches are single-flight per instance, and a
// generation counter discards responses that resolve after the store was
// invalidated, so a stale response never overwrites newer state.
type Collection[T any] struct {
	mu     sync.Mutex
	fetch  Fetcher[T]
	logger *slog.Logger

	items       []T
	loading     bool
	err         *domain.ErrorInfo
	lastUpdated time.Time

	inflight   *call[T]
	generation uint64
}

// NewCollection creates a collection store around fetch.
func NewCollection[T any](fetch Fetcher[T], logger *slog.Logger) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{fetch: fetch, logger: logger}
}

// Fetch loads the collection. A caller arriving while a fetch is in flight
// joins it and receives the same result instead of starting a second
// request. On success items are replaced wholesale, the timestamp is
// stamped and the error slot cleared; on failure the error slot is set and
// the previous items kept. The loading flag is cleared on every exit path.
// The raw error is returned so callers may react beyond the stored message.
func (c *Collection[T]) Fetch(ctx context.Context) error {
	c.mu.Lock()
	if c.inflight != nil {
		cl := c.inflight
		c.mu.Unlock()
		<-cl.done
		return cl.err
	}

	cl := &call[T]{done: make(chan struct{})}
	c.inflight = cl
	c.loading = true
	c.err = nil
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	if gen == c.generation {
		if err != nil {
			c.err = api.UserMessage(err)
			c.logger.Error("collection fetch failed", "error", err)
		} else {
			c.items = items
			c.lastUpdated = time.Now()
			c.err = nil
		}
		c.loading = false
		c.inflight = nil
	} else {
		// Invalidated while in flight; the result is stale. Discard.
		c.logger.Debug("discarding stale fetch result", "generation", gen)
	}
	c.mu.Unlock()

	cl.items, cl.err = items, err
	close(cl.done)
	return err
}

// Refresh is Fetch for callers that want refetch semantics without caring
// about the initial-vs-subsequent distinction.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	return c.Fetch(ctx)
}

// ClearError resets the error slot; items and loading are untouched.
func (c *Collection[T]) ClearError() {
	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()
}

// Items returns the current collection. Callers must not mutate it.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Loading reports whether a fetch is in flight.
func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last fetch failure, or nil.
func (c *Collection[T]) Err() *domain.ErrorInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// LastUpdated returns when the collection last refreshed successfully.
func (c *Collection[T]) LastUpdated() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUpdated
}

// invalidate drops items and detaches any in-flight fetch so its eventual
// result is discarded. Used when the store switches to a different remote
// collection.
func (c *Collection[T]) invalidate() {
	c.mu.Lock()
	c.items = nil
	c.err = nil
	c.loading = false
	c.inflight = nil
	c.generation++
	c.lastUpdated = time.Time{}
	c.mu.Unlock()
}

// detach discards any in-flight fetch so its result is ignored and the
// next Fetch starts a fresh request instead of joining the old one. Unlike
// invalidate, the current items stay visible until the new fetch lands.
// Used when the fetch parameters change mid-flight.
func (c *Collection[T]) detach() {
	c.mu.Lock()
	c.inflight = nil
	c.loading = false
	c.generation++
	c.mu.Unlock()
}

// mutate applies fn to the items under the store lock. Sibling actions
// (create, recommendation patches) use this to edit in place.
func (c *Collection[T]) mutate(fn func([]T) []T) {
	c.mu.Lock()
	c.items = fn(c.items)
	c.mu.Unlock()
}

// begin marks a non-fetch action as started: loading on, error cleared.
func (c *Collection[T]) begin() {
	c.mu.Lock()
	c.loading = true
	c.err = nil
	c.mu.Unlock()
}

// finish ends a non-fetch action, recording err in the error slot when the
// action failed. Returns err unchanged for the caller.
func (c *Collection[T]) finish(err error) error {
	c.mu.Lock()
	if err != nil {
		c.err = api.UserMessage(err)
	}
	c.loading = false
	c.mu.Unlock()
	return err
}
