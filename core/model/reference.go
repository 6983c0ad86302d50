package model

import (
	"fmt"
	"strings"
)

// Reference identifies a domain entity.
type Reference interface {
	// ModelType returns the type tag (e.g. "Person").
	ModelType() string
	// ModelID returns the entity id within its type.
	ModelID() string
}

// Loader is implemented by references that know whether their full field set is present.
type Loader interface {
	IsLoaded() bool
}

// Ref is a stub reference carrying only the type and id.
type Ref struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ModelType implements Reference.
func (r Ref) ModelType() string { return r.Type }

// ModelID implements Reference.
func (r Ref) ModelID() string { return r.ID }

// String returns the "Type:id" form accepted by ParseRef.
func (r Ref) String() string { return r.Type + ":" + r.ID }

// Key returns the identity key of a reference.
func Key(r Reference) string {
	return r.ModelType() + "#" + r.ModelID()
}

// RefOf returns the stub form of any reference.
func RefOf(r Reference) Ref {
	return Ref{Type: r.ModelType(), ID: r.ModelID()}
}

// Same reports whether a and b identify the same entity: the same value, or the same type and id.
func Same(a, b Reference) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	return a.ModelType() == b.ModelType() && a.ModelID() == b.ModelID()
}

// IsLoaded reports whether r carries its full field set.
func IsLoaded(r Reference) bool {
	l, ok := r.(Loader)
	return ok && l.IsLoaded()
}

// ParseRef parses "Type:id".
func ParseRef(s string) (Ref, error) {
	typ, id, ok := strings.Cut(s, ":")
	if !ok || typ == "" || id == "" {
		return Ref{}, fmt.Errorf("invalid reference %q: expected Type:id", s)
	}
	return Ref{Type: typ, ID: id}, nil
}
