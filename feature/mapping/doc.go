// Package mapping maintains live, derived collections of objects reachable from an
// owner through a join model.
//
// A mapping is described by a Config: an owner object lists its join records in
// ListAttr; each join record points back at the owner through ObjectAttr and at the
// related object (the "option") through OptionAttr. Attaching a Loader to an owner
// yields a Binding whose results are the reified options, kept current from two
// independent sources:
//
//   - the owner's own join list: initial attach and every replacement of ListAttr
//     refresh all stubs in one batched RefreshQueue;
//   - lifecycle events of the join model: created records that pass IsValidMapping
//     are inserted, destroyed or orphaned records remove the exact node they produced.
//
// Join records missing their option reference are treated as access restricted and
// skipped without error.
//
// # Results
//
// Each MappedResult pairs an instance with the chain of mappings that produced it.
// MappingNode is a closed variant: Base marks the owner itself, Indirect names the
// join record and nests the nodes below it. An instance appears at most once per
// binding; a second join for the same option adds another Indirect node.
package mapping
