package identity

import (
	"fmt"
	"sync"

	"objectsync/core/model"
)

// Cache maps (type, id) to the canonical loaded instance.
type Cache struct {
	mu      sync.RWMutex
	objects map[string]*model.Object
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		objects: make(map[string]*model.Object),
	}
}

// Lookup returns the cached instance for (typ, id).
func (c *Cache) Lookup(typ, id string) (*model.Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	obj, ok := c.objects[model.Key(model.Ref{Type: typ, ID: id})]
	return obj, ok
}

// Store merges a fetched record into the cache. The record's own type tag wins over typ.
func (c *Cache) Store(typ string, rec model.Record) (*model.Object, error) {
	id, err := rec.ID()
	if err != nil {
		return nil, fmt.Errorf("store %s record: %w", typ, err)
	}
	typ = rec.Type(typ)
	key := model.Key(model.Ref{Type: typ, ID: id})

	c.mu.Lock()
	obj, ok := c.objects[key]
	if !ok {
		obj = model.NewObject(typ, id)
		c.objects[key] = obj
	}
	c.mu.Unlock()

	// Apply outside the cache lock; watchers may call back into Reify.
	obj.Apply(rec)
	return obj, nil
}

// Reify returns the canonical instance for ref, or ref itself when nothing is cached.
func (c *Cache) Reify(ref model.Reference) model.Reference {
	if ref == nil {
		return nil
	}
	if obj, ok := c.Lookup(ref.ModelType(), ref.ModelID()); ok {
		return obj
	}
	return ref
}

// ReifyAll maps Reify over refs, preserving order.
func (c *Cache) ReifyAll(refs []model.Reference) []model.Reference {
	out := make([]model.Reference, len(refs))
	for i, ref := range refs {
		out[i] = c.Reify(ref)
	}
	return out
}

// Len returns the number of cached instances.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.objects)
}
