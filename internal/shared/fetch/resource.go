// Package fetch tracks the loading, error and data state of one backend read.
package fetch

import (
	"context"
	"sync"

	apperrors "github.com/ilim-academy/website/internal/shared/errors"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Policy decides what data a resource holds after a failed load.
type Policy int

const (
	// KeepLastOnError keeps the last successful value; the fallback is used
	// only when nothing has loaded yet.
	KeepLastOnError Policy = iota
	// ClearOnError drops held data and substitutes the fallback, if any.
	ClearOnError
)

func (p Policy) String() string {
	switch p {
	case ClearOnError:
		return "clear_on_error"
	default:
		return "keep_last_on_error"
	}
}

// State is a snapshot of a resource. Loading is true only while the current
// load is outstanding. Data and Err may both be set after a failed load.
type State[T any] struct {
	Data    *T
	Loading bool
	Err     string
	Status  Status
}

// Failed reports whether the latest load ended in an error.
func (s State[T]) Failed() bool {
	return s.Status == StatusError
}

// Fetcher performs the underlying read.
type Fetcher[T any] func(ctx context.Context) (T, error)

// ErrorHook observes every failed load with the raw error.
type ErrorHook func(ctx context.Context, err error)

type Option[T any] func(*Resource[T])

// WithFallback sets the value substituted when a load fails and nothing is held.
func WithFallback[T any](v T) Option[T] {
	return func(r *Resource[T]) {
		r.fallback = &v
	}
}

func WithPolicy[T any](p Policy) Option[T] {
	return func(r *Resource[T]) {
		r.policy = p
	}
}

func WithErrorHook[T any](hook ErrorHook) Option[T] {
	return func(r *Resource[T]) {
		r.hooks = append(r.hooks, hook)
	}
}

// WithGenericMessage overrides the message used when an error carries no text.
func WithGenericMessage[T any](msg string) Option[T] {
	return func(r *Resource[T]) {
		r.generic = msg
	}
}

// Resource runs a fetcher and applies its outcome. Loads are numbered; a
// result is applied only when its load is still the latest and the resource
// is open. Superseded requests are not cancelled, their results are dropped.
type Resource[T any] struct {
	fetcher  Fetcher[T]
	fallback *T
	policy   Policy
	hooks    []ErrorHook
	generic  string

	mu         sync.Mutex
	state      State[T]
	last       *T
	generation uint64
	closed     bool
}

func New[T any](fetcher Fetcher[T], opts ...Option[T]) *Resource[T] {
	r := &Resource[T]{
		fetcher: fetcher,
		policy:  KeepLastOnError,
		generic: apperrors.GenericMessage,
		state:   State[T]{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load runs the fetcher and returns the resulting snapshot.
func (r *Resource[T]) Load(ctx context.Context) State[T] {
	gen, ok := r.begin()
	if !ok {
		return r.Snapshot()
	}

	v, err := r.fetcher(ctx)
	if err != nil {
		for _, hook := range r.hooks {
			hook(ctx, err)
		}
	}

	r.apply(gen, v, err)
	return r.Snapshot()
}

// Refetch starts a new load. A load already in flight keeps running and its
// result is discarded.
func (r *Resource[T]) Refetch(ctx context.Context) State[T] {
	return r.Load(ctx)
}

// Snapshot returns a copy of the current state.
func (r *Resource[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.state
	if s.Data != nil {
		v := *s.Data
		s.Data = &v
	}
	return s
}

// Close stops the resource from applying any further results.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

func (r *Resource[T]) begin() (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, false
	}
	r.generation++
	r.state.Loading = true
	r.state.Status = StatusLoading
	return r.generation, true
}

func (r *Resource[T]) apply(gen uint64, v T, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || gen != r.generation {
		return
	}

	r.state.Loading = false

	if err == nil {
		r.last = &v
		r.state.Data = &v
		r.state.Err = ""
		r.state.Status = StatusSuccess
		return
	}

	r.state.Err = apperrors.Message(err, r.generic)
	r.state.Status = StatusError

	switch r.policy {
	case ClearOnError:
		r.state.Data = r.fallback
	default:
		if r.last != nil {
			r.state.Data = r.last
		} else {
			r.state.Data = r.fallback
		}
	}
}
