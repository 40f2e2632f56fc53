package query

import (
	"context"
	"sync"
	"time"

	"catalog-admin/internal/apiclient"
)

type Status int

const (
	StatusPending Status = iota
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "pending"
	}
}

// Result is what a mounted consumer renders from. Data survives a failed
// refetch so a view can keep showing the last good value.
type Result[T any] struct {
	Status     Status
	Data       T
	Err        error
	UpdatedAt  time.Time
	IsFetching bool
}

func (r Result[T]) IsPending() bool { return r.Status == StatusPending }
func (r Result[T]) IsError() bool   { return r.Status == StatusError }
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }

// Message is the error text to show for an errored result.
func (r Result[T]) Message(fallback string) string {
	if r.Err == nil {
		return ""
	}
	return apiclient.Message(r.Err, fallback)
}

type ObserverOption func(*observerConfig)

type observerConfig struct {
	enabled bool
}

// Enabled gates the observer; a disabled observer never fetches. Use it
// for queries keyed by a value that may still be empty.
func Enabled(enabled bool) ObserverOption {
	return func(c *observerConfig) { c.enabled = enabled }
}

// Observer is one mounted consumer of a key.
type Observer[T any] struct {
	client  *Client
	key     Key
	fetch   FetchFunc[T]
	enabled bool

	mu        sync.RWMutex
	result    Result[T]
	ctx       context.Context
	cancel    context.CancelFunc
	handle    *observerHandle
	listeners map[int]func(Result[T])
	nextID    int
}

func NewObserver[T any](c *Client, key Key, fn FetchFunc[T], opts ...ObserverOption) *Observer[T] {
	cfg := observerConfig{enabled: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Observer[T]{
		client:    c,
		key:       key,
		fetch:     fn,
		enabled:   cfg.enabled,
		listeners: make(map[int]func(Result[T])),
	}
}

func (o *Observer[T]) Key() Key {
	return o.key
}

// Mount registers the observer with the client and loads its key, serving
// a cached value when there is one. The observer stays mounted until
// Unmount or until ctx is done.
func (o *Observer[T]) Mount(ctx context.Context) Result[T] {
	o.mu.Lock()
	if o.handle != nil {
		o.mu.Unlock()
		return o.Result()
	}
	o.ctx, o.cancel = context.WithCancel(ctx)
	o.handle = &observerHandle{key: o.key, refetch: func(ctx context.Context) error {
		_, err := o.run(ctx, true)
		return err
	}}
	enabled := o.enabled
	o.mu.Unlock()

	if !enabled {
		return o.Result()
	}

	o.client.register(o.handle)
	o.run(ctx, false)
	return o.Result()
}

// Refetch reloads the key, bypassing the cache. On a disabled observer it
// returns ErrDisabled without touching the network.
func (o *Observer[T]) Refetch(ctx context.Context) (Result[T], error) {
	return o.run(ctx, true)
}

// Unmount cancels in-flight loads of this observer and stops it from
// following invalidations. Its last result stays readable.
func (o *Observer[T]) Unmount() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.handle == nil {
		return
	}
	o.client.unregister(o.handle)
	o.cancel()
	o.handle = nil
}

func (o *Observer[T]) Result() Result[T] {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.result
}

// Subscribe calls fn after every state change until the returned func is
// called.
func (o *Observer[T]) Subscribe(fn func(Result[T])) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.listeners, id)
	}
}

func (o *Observer[T]) run(ctx context.Context, force bool) (Result[T], error) {
	o.mu.Lock()
	if !o.enabled {
		res := o.result
		o.mu.Unlock()
		return res, ErrDisabled
	}
	mountCtx := o.ctx
	o.result.IsFetching = true
	o.mu.Unlock()
	o.emit()

	runCtx := ctx
	if mountCtx != nil {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithCancel(mountCtx)
		defer cancel()
		stop := context.AfterFunc(ctx, cancel)
		defer stop()
	}

	var (
		v   T
		err error
	)
	if force {
		v, err = Refetch(runCtx, o.client, o.key, o.fetch)
	} else {
		v, err = Fetch(runCtx, o.client, o.key, o.fetch)
	}

	o.mu.Lock()
	if mountCtx != nil && mountCtx.Err() != nil {
		// unmounted while loading
		o.result.IsFetching = false
		res := o.result
		o.mu.Unlock()
		return res, mountCtx.Err()
	}
	o.result.IsFetching = false
	if err != nil {
		o.result.Status = StatusError
		o.result.Err = err
	} else {
		o.result.Status = StatusSuccess
		o.result.Data = v
		o.result.Err = nil
		o.result.UpdatedAt = time.Now()
	}
	res := o.result
	o.mu.Unlock()
	o.emit()

	return res, err
}

func (o *Observer[T]) emit() {
	o.mu.RLock()
	res := o.result
	fns := make([]func(Result[T]), 0, len(o.listeners))
	for _, fn := range o.listeners {
		fns = append(fns, fn)
	}
	o.mu.RUnlock()

	for _, fn := range fns {
		fn(res)
	}
}
