// Package source builds the record sources registered with the refresh layer.
//
// A deployment picks one kind of source:
//
//   - sql: one table per type through GORM (see sqlsource);
//   - bucket: one JSON document per record in object storage (see bucketsource);
//   - http: one REST collection per type (see httpsource).
//
// Register verifies the backing store where that is possible so misconfiguration
// fails at startup rather than on the first fetch.
package source
