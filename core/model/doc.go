// Package model defines the domain vocabulary shared by the refresh layer.
//
// # References
//
// A Reference identifies a domain entity by (type, id). Ref is the minimal stub form
// carried inside records; *Object is the canonical, identity-cached instance that the
// identity cache hands out. Both satisfy Reference, so code that only needs identity
// accepts either.
//
// # Objects
//
// An Object holds the fields of a fetched record. Fetches update an Object in place
// (Apply) so every holder of the pointer observes the new state; attribute watchers
// are notified of each changed field.
//
// # Registry
//
// The Registry maps a type tag to the Model that can batch fetch it and to the event
// channel carrying that type's lifecycle notifications. It replaces any name-based
// lookup of constructors: a type is known only once it has been registered.
package model
