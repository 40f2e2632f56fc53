package query

import (
	"context"
	"sync"
)

type MutationStatus int

const (
	MutationIdle MutationStatus = iota
	MutationPending
	MutationError
	MutationSuccess
)

func (s MutationStatus) String() string {
	switch s {
	case MutationPending:
		return "pending"
	case MutationError:
		return "error"
	case MutationSuccess:
		return "success"
	default:
		return "idle"
	}
}

type MutationFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

type MutationOption[In, Out any] func(*Mutation[In, Out])

// OnSuccess runs after a successful call, before Mutate returns.
func OnSuccess[In, Out any](fn func(ctx context.Context, in In, out Out)) MutationOption[In, Out] {
	return func(m *Mutation[In, Out]) { m.onSuccess = append(m.onSuccess, fn) }
}

// OnError runs after a failed call, before Mutate returns.
func OnError[In, Out any](fn func(ctx context.Context, in In, err error)) MutationOption[In, Out] {
	return func(m *Mutation[In, Out]) { m.onError = append(m.onError, fn) }
}

// Mutation wraps a state-changing call. It does not serialize calls:
// callers that must avoid double submission check IsPending first.
type Mutation[In, Out any] struct {
	fn        MutationFunc[In, Out]
	onSuccess []func(ctx context.Context, in In, out Out)
	onError   []func(ctx context.Context, in In, err error)

	mu       sync.Mutex
	inFlight int
	status   MutationStatus
	data     Out
	err      error
}

func NewMutation[In, Out any](fn MutationFunc[In, Out], opts ...MutationOption[In, Out]) *Mutation[In, Out] {
	m := &Mutation[In, Out]{fn: fn}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mutate runs the call once. There is no retry.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	m.inFlight++
	m.status = MutationPending
	m.mu.Unlock()

	out, err := m.fn(ctx, in)

	if err != nil {
		for _, fn := range m.onError {
			fn(ctx, in, err)
		}
	} else {
		for _, fn := range m.onSuccess {
			fn(ctx, in, out)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
	m.data, m.err = out, err
	switch {
	case m.inFlight > 0:
		m.status = MutationPending
	case err != nil:
		m.status = MutationError
	default:
		m.status = MutationSuccess
	}
	return out, err
}

func (m *Mutation[In, Out]) Status() MutationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Mutation[In, Out]) IsPending() bool {
	return m.Status() == MutationPending
}

func (m *Mutation[In, Out]) Data() Out {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}

func (m *Mutation[In, Out]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Reset returns the mutation to idle.
func (m *Mutation[In, Out]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero Out
	m.status, m.data, m.err = MutationIdle, zero, nil
}
