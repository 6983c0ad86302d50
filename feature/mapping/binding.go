package mapping

import (
	"sort"
	"sync"

	"objectsync/core/model"
)

// Binding is the live derived collection of one owner.
type Binding struct {
	loader *Loader
	owner  *model.Object

	mu      sync.RWMutex
	results []*MappedResult
	subs    map[int]func([]MappedResult)
	nextSub int
	cancels []func()
	closed  bool

	pending sync.WaitGroup
}

func newBinding(l *Loader, owner *model.Object) *Binding {
	return &Binding{
		loader: l,
		owner:  owner,
		subs:   make(map[int]func([]MappedResult)),
	}
}

// Owner returns the object the binding is attached to.
func (b *Binding) Owner() *model.Object {
	return b.owner
}

// Results returns a snapshot of the mapped results in insertion order.
func (b *Binding) Results() []MappedResult {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// Instances returns the mapped instances in insertion order.
func (b *Binding) Instances() []model.Reference {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Reference, len(b.results))
	for i, r := range b.results {
		out[i] = r.Instance
	}
	return out
}

// Subscribe registers fn to receive a snapshot after every change.
// The returned function cancels the subscription.
func (b *Binding) Subscribe(fn func([]MappedResult)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Close detaches the binding from its owner and the join model's events, then waits
// for running stub refreshes to finish.
func (b *Binding) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	cancels := b.cancels
	b.cancels = nil
	b.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	b.pending.Wait()
	b.loader.forget(b)
}

// Wait blocks until stub refreshes started by owner changes have finished.
func (b *Binding) Wait() {
	b.pending.Wait()
}

func (b *Binding) isClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// insert adds instance reached through join. It reports whether the binding changed.
func (b *Binding) insert(instance, join model.Reference) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, r := range b.results {
		if !model.Same(r.Instance, instance) {
			continue
		}
		if r.joinIndex(join) >= 0 {
			return false
		}
		next := r.clone()
		next.Mappings = append(next.Mappings, Indirect{Join: join, Children: []MappingNode{Base{}}})
		b.results[i] = &next
		return true
	}

	b.results = append(b.results, &MappedResult{
		Instance: instance,
		Mappings: []MappingNode{Indirect{Join: join, Children: []MappingNode{Base{}}}},
	})
	return true
}

// remove drops the node produced by join, and its result once no mapping remains.
func (b *Binding) remove(join model.Reference) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, r := range b.results {
		idx := r.joinIndex(join)
		if idx < 0 {
			continue
		}
		if len(r.Mappings) == 1 {
			b.results = append(b.results[:i:i], b.results[i+1:]...)
			return true
		}
		next := r.clone()
		next.Mappings = append(next.Mappings[:idx:idx], next.Mappings[idx+1:]...)
		b.results[i] = &next
		return true
	}
	return false
}

func (b *Binding) notify() {
	b.mu.RLock()
	snapshot := b.snapshotLocked()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	fns := make([]func([]MappedResult), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func (b *Binding) snapshotLocked() []MappedResult {
	out := make([]MappedResult, len(b.results))
	for i, r := range b.results {
		out[i] = r.clone()
	}
	return out
}
