// Package cache is a keyed, de-duplicated, invalidatable cache over
// endpoint-catalog reads, plus mutation helpers that invalidate dependent
// keys.
//
// # Behavior
//
//   - Two reads of the same key never hit the network concurrently; the
//     second joins the first's in-flight request (singleflight).
//   - A cached value is returned immediately even when stale; staleness
//     only triggers a background refresh, so reads never block on the TTL.
//   - Reads and mutations get exactly one automatic retry before the error
//     surfaces, except authentication failures, which short-circuit to the
//     session state machine.
//   - Mutations invalidate the keys declared for them in the Policy, and
//     only after the backend confirms success.
//   - Every helper refuses to run without a session token, resolving to
//     common.ErrNoAccessToken instead of issuing spurious unauthenticated
//     requests during the session-verifying window.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/monacovault/vaultctl/internal/client/transport"
	"github.com/monacovault/vaultctl/internal/common"
	"github.com/monacovault/vaultctl/internal/logging"
)

// FetchFunc loads a resource from the backend.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is the process-wide query cache. Mutation helpers are the sole
// writers to cached entries; reads only look up.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
	policy  Policy
	tokens  transport.TokenSource
	logger  logging.Logger
	clock   func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTokenSource sets the session token supplier used by the
// disabled-unless-authenticated guard.
func WithTokenSource(ts transport.TokenSource) Option {
	return func(c *Cache) { c.tokens = ts }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// WithClock overrides the time source. Intended for staleness tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.clock = now }
}

// New returns a Cache governed by the given policy.
func New(policy Policy, opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		policy:  policy,
		tokens:  func() string { return "" },
		logger:  logging.NewDiscard(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key, fetching it when absent. A present
// but stale value is returned immediately while a background refresh runs.
func (c *Cache) Get(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	if c.tokens() == "" {
		return nil, common.ErrNoAccessToken
	}
	ks := key.String()

	c.mu.Lock()
	e, ok := c.entries[ks]
	if ok {
		stale := c.clock().Sub(e.fetchedAt) > c.policy.ttlFor(ks)
		c.mu.Unlock()
		if stale {
			c.refreshInBackground(ks, fetch)
		}
		return e.value, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(ks, func() (any, error) {
		val, err := c.fetchWithRetry(ctx, fetch)
		if err != nil {
			return nil, err
		}
		c.put(ks, val)
		return val, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Lookup is the typed convenience wrapper over (*Cache).Get.
func Lookup[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %s holds %T", key, v)
	}
	return typed, nil
}

// Mutate runs a mutation and, only on success, invalidates the cache keys
// the policy declares for op. A failed mutation never invalidates.
func (c *Cache) Mutate(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if c.tokens() == "" {
		return common.ErrNoAccessToken
	}
	_, err := c.fetchWithRetry(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})
	if err != nil {
		return err
	}
	c.invalidateOp(op)
	return nil
}

// Invalidate drops the given keys and everything nested under them, and
// forgets any in-flight fetches so post-mutation reads cannot join a
// pre-mutation request.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		ks := key.String()
		c.group.Forget(ks)
		for stored := range c.entries {
			if stored == ks || strings.HasPrefix(stored, ks+"/") {
				delete(c.entries, stored)
			}
		}
	}
}

// InvalidateAll empties the cache. Used when the active tenant changes,
// since nearly every resource is tenant-scoped.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ks := range c.entries {
		c.group.Forget(ks)
		delete(c.entries, ks)
	}
}

func (c *Cache) invalidateOp(op string) {
	keys, ok := c.policy.Invalidates[op]
	if !ok {
		return
	}
	if keys == nil {
		c.InvalidateAll()
		return
	}
	c.Invalidate(keys...)
}

// fetchWithRetry applies the policy's retry count, one extra attempt by
// default. Authentication failures are never retried: they belong to the
// session state machine, not the retry loop.
func (c *Cache) fetchWithRetry(ctx context.Context, fetch FetchFunc) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= c.policy.Retries; attempt++ {
		v, err := fetch(ctx)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, transport.ErrUnauthorized) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// refreshInBackground revalidates a stale entry without blocking the
// caller. Concurrent stale reads of one key share a single refresh; a
// failed refresh keeps the stale value and is logged.
func (c *Cache) refreshInBackground(ks string, fetch FetchFunc) {
	go func() {
		_, err, _ := c.group.Do(ks, func() (any, error) {
			ctx := context.Background()
			val, err := c.fetchWithRetry(ctx, fetch)
			if err != nil {
				return nil, err
			}
			c.put(ks, val)
			return val, nil
		})
		if err != nil {
			c.logger.Warn(context.Background(), "background refresh failed", "key", ks, "error", err)
		}
	}()
}

func (c *Cache) put(ks string, val any) {
	c.mu.Lock()
	c.entries[ks] = entry{value: val, fetchedAt: c.clock()}
	c.mu.Unlock()
}
