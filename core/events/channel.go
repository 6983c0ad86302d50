package events

import (
	"sort"
	"sync"
)

// Event names a lifecycle notification.
type Event string

const (
	// Created is published after new records become available.
	Created Event = "created"
	// Destroyed is published after records are deleted.
	Destroyed Event = "destroyed"
	// Orphaned is published when records lose the object they were attached to.
	Orphaned Event = "orphaned"
)

// IsValid reports whether e is one of the known lifecycle events.
func (e Event) IsValid() bool {
	switch e {
	case Created, Destroyed, Orphaned:
		return true
	default:
		return false
	}
}

// Handler receives the payload of a published event.
type Handler[T any] func(items []T)

// Channel is a per-model event channel.
type Channel[T any] struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[Event]map[int]Handler[T]
}

// NewChannel creates an empty channel.
func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{
		handlers: make(map[Event]map[int]Handler[T]),
	}
}

// Subscribe registers h for event e. The returned function removes the subscription
// and is safe to call more than once.
func (c *Channel[T]) Subscribe(e Event, h Handler[T]) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	if c.handlers[e] == nil {
		c.handlers[e] = make(map[int]Handler[T])
	}
	c.handlers[e][id] = h

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.handlers[e], id)
	}
}

// Publish delivers items to every handler subscribed to e.
// Handlers are invoked outside the channel lock so they may subscribe or cancel.
func (c *Channel[T]) Publish(e Event, items ...T) {
	if len(items) == 0 {
		return
	}

	c.mu.RLock()
	ids := make([]int, 0, len(c.handlers[e]))
	for id := range c.handlers[e] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]Handler[T], 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, c.handlers[e][id])
	}
	c.mu.RUnlock()

	for _, h := range handlers {
		h(items)
	}
}

// Len returns the number of active subscriptions for e.
func (c *Channel[T]) Len(e Event) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handlers[e])
}
