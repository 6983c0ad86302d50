// Package bucketsource serves model records stored as JSON documents in an object
// storage bucket.
//
// Each record lives at `<prefix>/<Type>/<id>.json`. A batch fetch reads the requested
// documents concurrently (bounded by Config.Concurrency) and collapses concurrent reads
// of the same document into one request. Missing documents are skipped, matching the
// semantics of an `id IN` query that simply returns fewer rows.
package bucketsource
