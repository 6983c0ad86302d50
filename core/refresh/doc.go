// Package refresh batches, deduplicates and reifies object fetches.
//
// Callers hand references to a RefreshQueue. The Manager routes every reference that is
// not already loaded into a per-type ModelQueue, merging into an open queue of the same
// type when one exists and the id is not already queued. Each ModelQueue issues a single
// FindAll for all of its ids once its debounce window has passed and the global in-flight
// cap allows it. Fetched records land in the identity cache, and the RefreshQueue resolves
// with every enqueued reference mapped onto its canonical instance, in caller order.
//
// # Limits
//
//   - A ModelQueue holds at most Config.MaxQueueSize ids (150 by default).
//   - At most Config.MaxInFlight queues (6 by default) that fire through the debounce path
//     may be triggered but not completed at once; the rest park until a slot frees.
//
// # Cascading refresh
//
// Manager.RefreshAll walks a property path from a root object, refreshing every hop and
// fanning out in parallel over list-valued hops. A missing property ends that branch with a
// warning instead of an error.
//
// # Usage
//
//	mgr := refresh.NewManager(registry, cache, logger, nil, refresh.Config{})
//	rq := mgr.NewRefreshQueue()
//	if _, err := rq.Enqueue(refs, false); err != nil {
//	    return err
//	}
//	objects, err := rq.Trigger(mgr.Debounce()).Wait(ctx)
package refresh
