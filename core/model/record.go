package model

import (
	"fmt"

	"objectsync/core/utils"
)

// Record is a raw record as returned by a Model's FindAll.
type Record map[string]any

// ID returns the record id in string form.
func (r Record) ID() (string, error) {
	v, ok := r["id"]
	if !ok || v == nil {
		return "", fmt.Errorf("record has no id")
	}
	id := utils.ToString(v)
	if id == "" {
		return "", fmt.Errorf("record has an empty id")
	}
	return id, nil
}

// Type returns the record's own type tag, or fallback when it does not carry one.
func (r Record) Type(fallback string) string {
	if t, ok := r["type"].(string); ok && t != "" {
		return t
	}
	return fallback
}

// Normalize converts nested {type, id} maps into Ref stubs and typed reference
// slices into []any, recursively.
func Normalize(v any) any {
	switch val := v.(type) {
	case Ref, *Object:
		return val
	case map[string]any:
		if ref, ok := asRef(val); ok {
			return ref
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case Record:
		return Normalize(map[string]any(val))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	case []Ref:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case []Reference:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	default:
		return v
	}
}

func asRef(m map[string]any) (Ref, bool) {
	typ, ok := m["type"].(string)
	if !ok || typ == "" {
		return Ref{}, false
	}
	id, ok := m["id"]
	if !ok || id == nil {
		return Ref{}, false
	}
	return Ref{Type: typ, ID: utils.ToString(id)}, true
}

// References extracts the references held by an attribute value. The second
// result reports whether the value was list-like.
func References(v any) ([]Reference, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case Reference:
		return []Reference{val}, false
	case []any:
		out := make([]Reference, 0, len(val))
		for _, item := range val {
			if ref, ok := item.(Reference); ok {
				out = append(out, ref)
			}
		}
		return out, true
	case []Reference:
		return val, true
	case []Ref:
		out := make([]Reference, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}
