// Package identity holds the identity cache: the one canonical *model.Object per (type, id).
//
// Fetch results enter the cache through Store, which creates the object on first sight and
// merges later fetches into the same pointer, so bindings holding the object observe updates
// without re-reading the cache. Reify maps any reference onto the cached instance and never
// mutates the cache.
//
// # Usage
//
//	cache := identity.New()
//	obj, err := cache.Store("Person", record)
//	canonical := cache.Reify(model.Ref{Type: "Person", ID: "1"}) // == obj
package identity
