package refresh

import (
	"context"

	"objectsync/core/model"
)

// Future is the combined completion signal of a RefreshQueue.
type Future struct {
	done  chan struct{}
	items []model.Reference
	err   error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(items []model.Reference, err error) {
	f.items = items
	f.err = err
	close(f.done)
}

// Done is closed once the future has settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles or ctx ends. Abandoning a wait does not
// withdraw the underlying fetches.
func (f *Future) Wait(ctx context.Context) ([]model.Reference, error) {
	select {
	case <-f.done:
		return f.items, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
