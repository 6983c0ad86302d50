package model

import (
	"encoding/json"
	"reflect"
	"sort"
	"sync"
)

// Change describes one attribute update on an Object.
type Change struct {
	Field string
	Old   any
	New   any
}

// Object is the canonical in-memory instance of a domain entity.
type Object struct {
	typ string
	id  string

	mu       sync.RWMutex
	fields   map[string]any
	loaded   bool
	nextID   int
	watchers map[string]map[int]func(Change)
}

// NewObject creates an unloaded object.
func NewObject(typ, id string) *Object {
	return &Object{
		typ:      typ,
		id:       id,
		fields:   make(map[string]any),
		watchers: make(map[string]map[int]func(Change)),
	}
}

// ModelType implements Reference.
func (o *Object) ModelType() string { return o.typ }

// ModelID implements Reference.
func (o *Object) ModelID() string { return o.id }

// IsLoaded implements Loader.
func (o *Object) IsLoaded() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.loaded
}

// Get returns a field value.
func (o *Object) Get(field string) (any, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.fields[field]
	return v, ok
}

// Fields returns a shallow copy of all fields.
func (o *Object) Fields() map[string]any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[string]any, len(o.fields))
	for k, v := range o.fields {
		out[k] = v
	}
	return out
}

// Set replaces one attribute and notifies its watchers when the value changed.
func (o *Object) Set(field string, value any) {
	value = Normalize(value)

	o.mu.Lock()
	old, existed := o.fields[field]
	if existed && reflect.DeepEqual(old, value) {
		o.mu.Unlock()
		return
	}
	o.fields[field] = value
	o.mu.Unlock()

	o.notify([]Change{{Field: field, Old: old, New: value}})
}

// Apply merges a fetched record into the object in place and marks it loaded.
// The id and type keys are identity, not fields.
func (o *Object) Apply(rec Record) {
	var changes []Change

	o.mu.Lock()
	for k, v := range rec {
		if k == "id" || k == "type" {
			continue
		}
		v = Normalize(v)
		old, existed := o.fields[k]
		if existed && reflect.DeepEqual(old, v) {
			continue
		}
		o.fields[k] = v
		changes = append(changes, Change{Field: k, Old: old, New: v})
	}
	o.loaded = true
	o.mu.Unlock()

	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	o.notify(changes)
}

// Watch registers fn for changes of field. The returned function cancels the watch.
func (o *Object) Watch(field string, fn func(Change)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++
	if o.watchers[field] == nil {
		o.watchers[field] = make(map[int]func(Change))
	}
	o.watchers[field][id] = fn

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.watchers[field], id)
	}
}

func (o *Object) notify(changes []Change) {
	for _, c := range changes {
		o.mu.RLock()
		ids := make([]int, 0, len(o.watchers[c.Field]))
		for id := range o.watchers[c.Field] {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		fns := make([]func(Change), 0, len(ids))
		for _, id := range ids {
			fns = append(fns, o.watchers[c.Field][id])
		}
		o.mu.RUnlock()

		for _, fn := range fns {
			fn(c)
		}
	}
}

// MarshalJSON renders the object as a flat JSON document including type and id.
func (o *Object) MarshalJSON() ([]byte, error) {
	doc := o.Fields()
	doc["type"] = o.typ
	doc["id"] = o.id
	return json.Marshal(doc)
}
