package refresh

import (
	"sync"
	"time"

	"objectsync/core/model"

	"go.uber.org/zap"
)

// State is the lifecycle state of a ModelQueue.
type State int

const (
	// Pending queues accept ids.
	Pending State = iota
	// Triggered queues have issued (or are about to issue) their fetch.
	Triggered
	// Completed queues have settled.
	Completed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Triggered:
		return "triggered"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// ModelQueue coalesces ids of one model type into a single batched fetch.
type ModelQueue struct {
	model   model.Model
	manager *Manager

	mu           sync.Mutex
	ids          []string
	idSet        map[string]struct{}
	state        State
	lastActivity time.Time
	delay        time.Duration
	timer        *time.Timer

	done chan struct{}
	err  error
}

func newModelQueue(m model.Model, mgr *Manager) *ModelQueue {
	return &ModelQueue{
		model:        m,
		manager:      mgr,
		idSet:        make(map[string]struct{}),
		lastActivity: time.Now(),
		done:         make(chan struct{}),
	}
}

// Type returns the model type tag served by the queue.
func (q *ModelQueue) Type() string {
	return q.model.Name()
}

// IDs returns the queued ids in enqueue order.
func (q *ModelQueue) IDs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.ids...)
}

// Len returns the number of queued ids.
func (q *ModelQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ids)
}

// Has reports whether id is queued.
func (q *ModelQueue) Has(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.idSet[id]
	return ok
}

// State returns the current lifecycle state.
func (q *ModelQueue) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Done is closed once the queue has completed.
func (q *ModelQueue) Done() <-chan struct{} {
	return q.done
}

// Err returns the fetch failure, if any. Only meaningful after Done is closed.
func (q *ModelQueue) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

// Enqueue adds id to the queue. It returns nil once the queue has been triggered.
func (q *ModelQueue) Enqueue(id string) *ModelQueue {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.state != Pending {
		return nil
	}
	q.addLocked(id)
	return q
}

// tryAppend adds id when the queue is still open and below max ids.
func (q *ModelQueue) tryAppend(id string, max int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.state != Pending {
		return false
	}
	if _, ok := q.idSet[id]; !ok && len(q.ids) >= max {
		return false
	}
	q.addLocked(id)
	return true
}

func (q *ModelQueue) addLocked(id string) {
	if _, ok := q.idSet[id]; !ok {
		q.idSet[id] = struct{}{}
		q.ids = append(q.ids, id)
	}
	q.lastActivity = time.Now()
	if q.timer != nil {
		q.timer.Reset(q.delay)
	}
}

// Trigger issues the batched fetch. It is idempotent and returns the completion signal.
func (q *ModelQueue) Trigger() <-chan struct{} {
	q.mu.Lock()
	if q.state != Pending {
		q.mu.Unlock()
		return q.done
	}
	q.state = Triggered
	if q.timer != nil {
		q.timer.Stop()
	}
	ids := append([]string(nil), q.ids...)
	q.mu.Unlock()

	q.manager.activate(q)
	if len(ids) == 0 {
		q.complete(nil)
		return q.done
	}

	go q.fetch(ids)
	return q.done
}

// TriggerWithDebounce arms the queue's timer. The queue fires once delay has elapsed
// since its last enqueue and the manager grants an in-flight slot. When callers ask for
// different windows the shortest one wins.
func (q *ModelQueue) TriggerWithDebounce(delay time.Duration) <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.state != Pending {
		return q.done
	}
	switch {
	case q.timer == nil:
		q.delay = delay
		q.timer = time.AfterFunc(q.remainingLocked(time.Now()), q.onDeadline)
	case delay < q.delay:
		q.delay = delay
		q.timer.Reset(q.remainingLocked(time.Now()))
	}
	return q.done
}

func (q *ModelQueue) remainingLocked(now time.Time) time.Duration {
	wait := q.delay - now.Sub(q.lastActivity)
	if wait < 0 {
		return 0
	}
	return wait
}

// readyToFire reports whether a parked queue may be triggered now.
func (q *ModelQueue) readyToFire() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state == Pending && q.remainingLocked(time.Now()) == 0
}

func (q *ModelQueue) onDeadline() {
	q.mu.Lock()
	if q.state != Pending {
		q.mu.Unlock()
		return
	}
	if wait := q.remainingLocked(time.Now()); wait > 0 {
		q.timer.Reset(wait)
		q.mu.Unlock()
		return
	}
	q.mu.Unlock()

	if q.manager.reserve(q) {
		q.Trigger()
	}
}

func (q *ModelQueue) fetch(ids []string) {
	m := q.manager
	typ := q.Type()

	m.metrics.ObserveFetch(typ, len(ids))
	m.logger.Debug("Fetching batch", zap.String("model", typ), zap.Int("ids", len(ids)))

	// Fetches are detached from caller contexts: one queue serves many callers.
	records, err := q.model.FindAll(m.ctx, model.Query{IDIn: ids})
	if err != nil {
		m.metrics.ObserveFetchError(typ)
		m.logger.Warn("Batch fetch failed", zap.String("model", typ), zap.Int("ids", len(ids)), zap.Error(err))
		q.complete(&FetchError{Model: typ, IDs: ids, Err: err})
		return
	}

	for _, rec := range records {
		if _, err := m.cache.Store(typ, rec); err != nil {
			m.logger.Warn("Skipping fetched record", zap.String("model", typ), zap.Error(err))
		}
	}
	q.complete(nil)
}

func (q *ModelQueue) complete(err error) {
	q.mu.Lock()
	q.state = Completed
	q.err = err
	q.mu.Unlock()

	// Deregister before signalling so a waiter re-enqueueing the same id gets a fresh queue.
	q.manager.release(q)
	close(q.done)
}
