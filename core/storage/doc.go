// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow Client interface so the bucket
// record source can be tested against the mocks in core/storage/mocks. Both AWS S3
// and self-hosted MinIO endpoints are supported.
//
// # Operations
//
//   - BucketExists: Verifies access to the record bucket.
//   - GetObject: Streams one record document.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "records")
package storage
