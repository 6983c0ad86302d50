package refresh

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"objectsync/core/model"

	"golang.org/x/sync/errgroup"
)

// QueueState is the lifecycle state of a RefreshQueue.
type QueueState int

const (
	RefreshIdle QueueState = iota
	RefreshTriggered
	RefreshCompleted
)

// RefreshQueue collects references from one caller and resolves them together.
type RefreshQueue struct {
	manager *Manager

	mu      sync.Mutex
	objects []model.Reference
	queues  []*ModelQueue
	touched map[*ModelQueue]struct{}
	future  *Future
}

// Enqueue adds one reference or any (nested) slice of references. Nil items are ignored.
// A batch holding a reference of an unregistered type is rejected as a whole.
// Every item is kept for the resolved output; only items that are not loaded yet, or all
// items when force is set, are routed to model queues. Enqueue returns nil once the queue
// has been triggered.
func (rq *RefreshQueue) Enqueue(items any, force bool) (*RefreshQueue, error) {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if rq.future != nil {
		return nil, nil
	}

	refs := flatten(items, nil)
	// Reject the whole batch before any id reaches a model queue.
	for _, ref := range refs {
		if _, ok := rq.manager.registry.Model(ref.ModelType()); !ok {
			return rq, fmt.Errorf("%w: %s", ErrUnknownModel, ref.ModelType())
		}
	}

	for _, ref := range refs {
		rq.objects = append(rq.objects, ref)
		if !force && rq.loaded(ref) {
			continue
		}

		q, err := rq.manager.Enqueue(ref, force)
		if err != nil {
			return rq, err
		}
		if _, ok := rq.touched[q]; !ok {
			rq.touched[q] = struct{}{}
			rq.queues = append(rq.queues, q)
		}
	}
	return rq, nil
}

func (rq *RefreshQueue) loaded(ref model.Reference) bool {
	return model.IsLoaded(ref) || model.IsLoaded(rq.manager.cache.Reify(ref))
}

// Trigger starts every touched queue with the given debounce and returns the combined
// future. It is idempotent: later calls return the same future.
func (rq *RefreshQueue) Trigger(delay time.Duration) *Future {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if rq.future != nil {
		return rq.future
	}
	f := newFuture()
	rq.future = f

	objects := append([]model.Reference(nil), rq.objects...)
	cache := rq.manager.cache

	if len(rq.queues) == 0 {
		f.resolve(cache.ReifyAll(objects), nil)
		return f
	}

	queues := append([]*ModelQueue(nil), rq.queues...)
	for _, q := range queues {
		q.TriggerWithDebounce(delay)
	}

	go func() {
		var g errgroup.Group
		for _, q := range queues {
			g.Go(func() error {
				<-q.Done()
				return q.Err()
			})
		}
		if err := g.Wait(); err != nil {
			f.resolve(nil, err)
			return
		}
		f.resolve(cache.ReifyAll(objects), nil)
	}()
	return f
}

// Objects returns the enqueued references in caller order.
func (rq *RefreshQueue) Objects() []model.Reference {
	rq.mu.Lock()
	defer rq.mu.Unlock()
	return append([]model.Reference(nil), rq.objects...)
}

// Queues returns the model queues this refresh queue depends on.
func (rq *RefreshQueue) Queues() []*ModelQueue {
	rq.mu.Lock()
	defer rq.mu.Unlock()
	return append([]*ModelQueue(nil), rq.queues...)
}

// State reports whether the queue is idle, triggered, or settled.
func (rq *RefreshQueue) State() QueueState {
	rq.mu.Lock()
	f := rq.future
	rq.mu.Unlock()

	if f == nil {
		return RefreshIdle
	}
	select {
	case <-f.Done():
		return RefreshCompleted
	default:
		return RefreshTriggered
	}
}

func flatten(items any, out []model.Reference) []model.Reference {
	switch v := items.(type) {
	case nil:
		return out
	case *model.Object:
		if v == nil {
			return out
		}
		return append(out, v)
	case model.Reference:
		return append(out, v)
	case []model.Reference:
		for _, item := range v {
			out = flatten(item, out)
		}
		return out
	case []any:
		for _, item := range v {
			out = flatten(item, out)
		}
		return out
	}

	rv := reflect.ValueOf(items)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			out = flatten(rv.Index(i).Interface(), out)
		}
	}
	return out
}
