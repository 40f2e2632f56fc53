// Package query is the client-side data layer: cached, deduplicated reads
// keyed by Key, mounted observers that follow invalidation, and mutations
// with lifecycle callbacks. The cache is an explicit *Client passed to
// whoever needs it.
package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"catalog-admin/internal/logger"
	"catalog-admin/internal/metrics"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	ErrDisabled     = errors.New("query is disabled")
	ErrTypeMismatch = errors.New("cached value has a different type")
)

// FetchFunc loads the value for one key.
type FetchFunc[T any] func(ctx context.Context) (T, error)

type entry struct {
	key       Key
	value     any
	updatedAt time.Time
}

// flight is one running load. Its context is cancelled once every caller
// waiting on it has given up.
type flight struct {
	key     Key
	stale   bool
	waiters int
	cancel  context.CancelFunc
	run     func() (any, error)
}

type observerHandle struct {
	key     Key
	refetch func(ctx context.Context) error
}

type Options struct {
	// Size bounds the number of cached keys; zero means unbounded.
	Size int
	// TTL is how long a cached value is served without refetching; zero
	// keeps values until they are invalidated or evicted.
	TTL time.Duration
}

type Client struct {
	cache *expirable.LRU[string, entry]
	group singleflight.Group
	stats metrics.CacheStats

	mu        sync.Mutex
	observers map[string]map[*observerHandle]struct{}
	inflight  map[string]*flight
}

func NewClient(opts Options) *Client {
	return &Client{
		cache:     expirable.NewLRU[string, entry](opts.Size, nil, opts.TTL),
		observers: make(map[string]map[*observerHandle]struct{}),
		inflight:  make(map[string]*flight),
	}
}

// Fetch returns the cached value for key when there is one, otherwise
// loads it. Concurrent loads of the same key share one call of fn.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn FetchFunc[T]) (T, error) {
	if v, ok, err := GetData[T](c, key); ok || err != nil {
		c.stats.Hits.Inc()
		logger.FromCtx(ctx).Debug("query cache hit", zap.String("key", key.String()))
		return v, err
	}
	c.stats.Misses.Inc()
	return load(ctx, c, key, fn)
}

// Refetch loads key regardless of what is cached and replaces the cached
// value on success.
func Refetch[T any](ctx context.Context, c *Client, key Key, fn FetchFunc[T]) (T, error) {
	return load(ctx, c, key, fn)
}

func load[T any](ctx context.Context, c *Client, key Key, fn FetchFunc[T]) (T, error) {
	var zero T
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "query"),
		zap.String("key", key.String()),
	)

	f, ch := c.join(ctx, key, func(shared context.Context, f *flight) (any, error) {
		timer := metrics.StartTimer()
		v, err := fn(shared)
		c.stats.ObserveFetch(timer.Duration(), err)
		if err != nil {
			log.Warn("query fetch failed", zap.Error(err))
			return nil, err
		}
		if !c.isStale(f) {
			c.cache.Add(key.hash(), entry{key: key, value: v, updatedAt: time.Now()})
		}
		log.Debug("query fetched", zap.Duration("duration_ms", timer.Duration()))
		return v, nil
	})
	defer c.leave(f)

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("%s: %w", key, ErrTypeMismatch)
		}
		return v, nil
	}
}

// join registers the caller as a waiter on the running load for key,
// starting one when there is none. The load runs on a context detached from
// any single caller so one caller giving up cannot fail the others.
func (c *Client) join(ctx context.Context, key Key, fn func(context.Context, *flight) (any, error)) (*flight, <-chan singleflight.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := key.hash()
	f, ok := c.inflight[h]
	if !ok {
		shared, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{key: key, cancel: cancel}
		f.run = func() (any, error) {
			defer c.endFlight(f)
			return fn(shared, f)
		}
		c.inflight[h] = f
	}
	f.waiters++
	return f, c.group.DoChan(h, f.run)
}

// leave drops one waiter and cancels the load when it was the last.
func (c *Client) leave(f *flight) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if h := f.key.hash(); c.inflight[h] == f {
		c.group.Forget(h)
		delete(c.inflight, h)
	}
}

func (c *Client) endFlight(f *flight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[f.key.hash()] == f {
		delete(c.inflight, f.key.hash())
	}
	f.cancel()
}

func (c *Client) isStale(f *flight) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return f.stale
}

// forgetInflight detaches running loads under prefix: later callers start
// a new load and the detached ones do not write to the cache.
func (c *Client) forgetInflight(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for h, f := range c.inflight {
		if f.key.HasPrefix(prefix) {
			f.stale = true
			c.group.Forget(h)
			delete(c.inflight, h)
		}
	}
}

// GetData reads the cached value for key without loading anything.
func GetData[T any](c *Client, key Key) (T, bool, error) {
	var zero T
	e, ok := c.cache.Get(key.hash())
	if !ok {
		return zero, false, nil
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false, fmt.Errorf("%s: %w", key, ErrTypeMismatch)
	}
	return v, true, nil
}

// SetData stores v under key as if it had just been fetched.
func SetData[T any](c *Client, key Key, v T) {
	c.cache.Add(key.hash(), entry{key: key, value: v, updatedAt: time.Now()})
}

// UpdatedAt reports when key was last stored.
func (c *Client) UpdatedAt(key Key) (time.Time, bool) {
	e, ok := c.cache.Peek(key.hash())
	if !ok {
		return time.Time{}, false
	}
	return e.updatedAt, true
}

// Invalidate drops every cached key under prefix and refetches every
// mounted observer under it before returning. Observers keep their own
// error state; the first refetch error is also returned.
func (c *Client) Invalidate(ctx context.Context, prefix Key) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "query"),
		zap.String("prefix", prefix.String()),
	)
	c.stats.Invalidations.Inc()

	removed := 0
	for _, h := range c.cache.Keys() {
		e, ok := c.cache.Peek(h)
		if ok && e.key.HasPrefix(prefix) {
			c.cache.Remove(h)
			removed++
		}
	}

	c.forgetInflight(prefix)
	handles := c.mountedUnder(prefix)
	log.Info("invalidated queries", zap.Int("removed", removed), zap.Int("observers", len(handles)))

	g, gctx := errgroup.WithContext(ctx)
	for _, h := range handles {
		g.Go(func() error {
			return h.refetch(gctx)
		})
	}
	return g.Wait()
}

func (c *Client) mountedUnder(prefix Key) []*observerHandle {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*observerHandle
	for _, set := range c.observers {
		for h := range set {
			if h.key.HasPrefix(prefix) {
				out = append(out, h)
			}
		}
	}
	return out
}

func (c *Client) register(h *observerHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.observers[h.key.hash()]
	if !ok {
		set = make(map[*observerHandle]struct{})
		c.observers[h.key.hash()] = set
	}
	set[h] = struct{}{}
}

func (c *Client) unregister(h *observerHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := c.observers[h.key.hash()]
	delete(set, h)
	if len(set) == 0 {
		delete(c.observers, h.key.hash())
	}
}

// Observers counts mounted observers for exactly key.
func (c *Client) Observers(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.observers[key.hash()])
}

// Clear empties the cache. Mounted observers keep their last result.
func (c *Client) Clear() {
	c.cache.Purge()
}

func (c *Client) Len() int {
	return c.cache.Len()
}

func (c *Client) Stats() metrics.Snapshot {
	return c.stats.Snapshot()
}
