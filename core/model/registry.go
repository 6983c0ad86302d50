package model

import (
	"context"
	"sort"
	"strings"
	"sync"

	"objectsync/core/events"
)

// Query is the batch lookup passed to FindAll.
type Query struct {
	// IDIn lists the ids to fetch, in enqueue order.
	IDIn []string
}

// Params returns the wire form of the query, e.g. {"id__in": "1,2"}.
func (q Query) Params() map[string]string {
	return map[string]string{"id__in": strings.Join(q.IDIn, ",")}
}

// Model fetches records of a single type in batches.
type Model interface {
	// Name returns the type tag served by this model (e.g. "Person").
	Name() string

	// FindAll returns the records whose id is listed in q. Ids without a record are
	// simply absent from the result.
	FindAll(ctx context.Context, q Query) ([]Record, error)
}

type funcModel struct {
	name string
	fn   func(context.Context, Query) ([]Record, error)
}

func (m funcModel) Name() string { return m.name }

func (m funcModel) FindAll(ctx context.Context, q Query) ([]Record, error) {
	return m.fn(ctx, q)
}

// Func adapts a function to the Model interface.
func Func(name string, fn func(context.Context, Query) ([]Record, error)) Model {
	return funcModel{name: name, fn: fn}
}

// Registry maps type tags to models and their lifecycle event channels.
type Registry struct {
	mu       sync.RWMutex
	models   map[string]Model
	channels map[string]*events.Channel[Reference]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		models:   make(map[string]Model),
		channels: make(map[string]*events.Channel[Reference]),
	}
}

// Register adds or replaces the model serving m.Name().
func (r *Registry) Register(m Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.Name()] = m
}

// Model returns the model registered for a type tag.
func (r *Registry) Model(name string) (Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[name]
	return m, ok
}

// Events returns the lifecycle channel of a type tag, creating it on first use.
// Channels exist independently of models so listeners may attach before registration.
func (r *Registry) Events(name string) *events.Channel[Reference] {
	r.mu.RLock()
	ch, ok := r.channels[name]
	r.mu.RUnlock()
	if ok {
		return ch
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ch, ok := r.channels[name]; ok {
		return ch
	}
	ch = events.NewChannel[Reference]()
	r.channels[name] = ch
	return ch
}

// Names returns the registered type tags in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
