// Package objects exposes the refresh layer over HTTP.
//
// # Routes
//
//   - POST /objects/refresh: batch refresh of references, returned in request order.
//   - GET /objects/:type/:id: one object, fetched through the shared queues.
//   - POST /objects/walk: cascading refresh along an attribute path.
//   - GET /bindings/:mapping/:type/:id: live mapped results of an owner.
//   - POST /events/:type/:event: lifecycle notification from the system of record.
//
// Requests from many clients land in the same model queues, so concurrent reads of
// the same ids cost one upstream batch.
package objects
