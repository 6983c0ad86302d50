package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"objectsync/core/identity"
	"objectsync/core/metrics"
	"objectsync/core/model"

	"go.uber.org/zap"
)

// Manager is the registry of live ModelQueues. It is the only writer of queue membership.
type Manager struct {
	registry *model.Registry
	cache    *identity.Cache
	logger   *zap.Logger
	metrics  *metrics.Metrics
	cfg      Config
	ctx      context.Context

	mu      sync.Mutex
	queues  map[string][]*ModelQueue
	active  map[*ModelQueue]struct{}
	waiting []*ModelQueue
}

// NewManager creates a manager. mt may be nil.
func NewManager(registry *model.Registry, cache *identity.Cache, logger *zap.Logger, mt *metrics.Metrics, cfg Config) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		registry: registry,
		cache:    cache,
		logger:   logger,
		metrics:  mt,
		cfg:      cfg.withDefaults(),
		ctx:      context.Background(),
		queues:   make(map[string][]*ModelQueue),
		active:   make(map[*ModelQueue]struct{}),
	}
}

// Cache returns the identity cache fed by this manager's fetches.
func (m *Manager) Cache() *identity.Cache {
	return m.cache
}

// Registry returns the model registry.
func (m *Manager) Registry() *model.Registry {
	return m.registry
}

// Debounce returns the configured default debounce window.
func (m *Manager) Debounce() time.Duration {
	return m.cfg.Debounce()
}

// Enqueue routes ref into a ModelQueue of its type and returns that queue.
//
// Unless force is set, an id already held by a live queue of the same type is not queued
// again. Otherwise the id joins the first open queue below the size cap, or a new queue.
func (m *Manager) Enqueue(ref model.Reference, force bool) (*ModelQueue, error) {
	typ := ref.ModelType()
	mdl, ok := m.registry.Model(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, typ)
	}
	id := ref.ModelID()

	m.mu.Lock()
	defer m.mu.Unlock()

	queues := m.queues[typ]
	if !force {
		for _, q := range queues {
			if q.Has(id) {
				return q, nil
			}
		}
	}
	for _, q := range queues {
		if q.tryAppend(id, m.cfg.MaxQueueSize) {
			return q, nil
		}
	}

	q := newModelQueue(mdl, m)
	q.tryAppend(id, m.cfg.MaxQueueSize)
	m.queues[typ] = append(queues, q)
	m.metrics.SetQueues(m.countLocked())
	return q, nil
}

// Queues returns the live queues of a type in creation order.
func (m *Manager) Queues(typ string) []*ModelQueue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*ModelQueue(nil), m.queues[typ]...)
}

// InFlight returns the number of queues triggered but not completed.
func (m *Manager) InFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// NewRefreshQueue creates an empty refresh queue bound to this manager.
func (m *Manager) NewRefreshQueue() *RefreshQueue {
	return &RefreshQueue{
		manager: m,
		touched: make(map[*ModelQueue]struct{}),
	}
}

// reserve claims an in-flight slot for q, parking it when none is free.
func (m *Manager) reserve(q *ModelQueue) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.active[q]; ok {
		return true
	}
	if len(m.active) < m.cfg.MaxInFlight {
		m.active[q] = struct{}{}
		m.metrics.SetInFlight(len(m.active))
		return true
	}
	for _, w := range m.waiting {
		if w == q {
			return false
		}
	}
	m.waiting = append(m.waiting, q)
	m.logger.Debug("Queue waiting for fetch slot",
		zap.String("model", q.Type()),
		zap.Int("in_flight", len(m.active)),
		zap.Int("waiting", len(m.waiting)),
	)
	return false
}

// activate marks q as triggered. Direct triggers bypass the in-flight cap.
func (m *Manager) activate(q *ModelQueue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[q] = struct{}{}
	m.metrics.SetInFlight(len(m.active))
}

// release deregisters a completed queue and fires parked queues into freed slots.
func (m *Manager) release(q *ModelQueue) {
	m.mu.Lock()
	delete(m.active, q)

	typ := q.Type()
	queues := m.queues[typ]
	for i, other := range queues {
		if other == q {
			queues = append(queues[:i:i], queues[i+1:]...)
			break
		}
	}
	if len(queues) == 0 {
		delete(m.queues, typ)
	} else {
		m.queues[typ] = queues
	}

	var ready []*ModelQueue
	for len(m.active) < m.cfg.MaxInFlight && len(m.waiting) > 0 {
		next := m.waiting[0]
		m.waiting = m.waiting[1:]
		// Queues that saw activity since parking are re-armed by their own timer.
		if !next.readyToFire() {
			continue
		}
		m.active[next] = struct{}{}
		ready = append(ready, next)
	}

	m.metrics.SetInFlight(len(m.active))
	m.metrics.SetQueues(m.countLocked())
	m.mu.Unlock()

	for _, next := range ready {
		next.Trigger()
	}
}

func (m *Manager) countLocked() int {
	n := 0
	for _, qs := range m.queues {
		n += len(qs)
	}
	return n
}
