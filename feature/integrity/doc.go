// Package integrity reports the health of a running objectsync instance.
//
// # Checks Provided
//
//   - Sources: Verifies every configured backing store (sql tables and columns, bucket existence).
//   - Queues: Lists the registered model queues with their state and pending ids.
//   - Runtime: Counts registered models, in-flight fetches, cached objects and live bindings.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/sources : Runs the source checks only.
//   - GET /integrity/queues : Lists the live queues.
package integrity
