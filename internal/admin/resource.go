package admin

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Loaded is the result of one Resource fetch, addressed to its owner.
type Loaded[T any] struct {
	owner string
	seq   uint64
	data  T
	err   error
}

// Resource is the load/error/data lifecycle shared by every read hook.
//
// Loading starts true so the first render shows a spinner. Fetch bumps the
// generation; only the result of the latest generation is committed, so a
// burst of refetches always settles on the response to the last one.
type Resource[T any] struct {
	env      Env
	sc       scope
	name     string
	fallback string
	fetch    func(ctx context.Context) (T, error)
	empty    T
	reset    bool
	seq      uint64

	data    T
	loading bool
	err     string
}

type resourceOpts[T any] struct {
	name     string
	fallback string
	fetch    func(ctx context.Context) (T, error)
	// reset replaces the data with empty when a fetch fails.
	reset bool
	empty T
}

func newResource[T any](env Env, o resourceOpts[T]) Resource[T] {
	return Resource[T]{
		env:      env,
		sc:       newScope(),
		name:     o.name,
		fallback: o.fallback,
		fetch:    o.fetch,
		empty:    o.empty,
		reset:    o.reset,
		data:     o.empty,
		loading:  true,
	}
}

// Data is the last committed value.
func (r Resource[T]) Data() T { return r.data }
func (r Resource[T]) Loading() bool { return r.loading }
func (r Resource[T]) Err() string { return r.err }
func (r Resource[T]) Closed() bool { return r.sc.ctx.Err() != nil }
func (r Resource[T]) Owner() string { return r.sc.id }
func (r Resource[T]) Generation() uint64 { return r.seq }

// Fetch starts a new generation. A closed resource does nothing.
func (r Resource[T]) Fetch() (Resource[T], tea.Cmd) {
	if r.Closed() {
		return r, nil
	}
	r.seq++
	r.loading = true
	r.err = ""

	ctx, owner, seq, fetch := r.sc.ctx, r.sc.id, r.seq, r.fetch
	return r, func() tea.Msg {
		data, err := fetch(ctx)
		return Loaded[T]{owner: owner, seq: seq, data: data, err: err}
	}
}

// Update commits a Loaded message addressed to this resource. The bool
// reports whether anything was committed; stale generations and results
// arriving after Close are dropped.
func (r Resource[T]) Update(msg tea.Msg) (Resource[T], bool) {
	m, ok := msg.(Loaded[T])
	if !ok || !r.sc.owns(m.owner) || m.seq != r.seq {
		return r, false
	}
	r.loading = false
	if m.err != nil {
		le := newLoadError(r.name, r.fallback, m.err)
		r.err = le.Message
		if r.reset {
			r.data = r.empty
		}
		r.env.logger().Warn("load failed", zap.String("resource", r.name), zap.Error(le))
		return r, true
	}
	r.data = m.data
	r.err = ""
	return r, true
}

// Close cancels in-flight requests. Later results are ignored.
func (r Resource[T]) Close() Resource[T] {
	r.sc.close()
	return r
}
