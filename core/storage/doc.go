// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface. Published
// shortage reports are stored through it (see core/report) and the integrity
// feature uses it to check that the report bucket is reachable. Both AWS S3
// and self-hosted MinIO are supported.
//
// The Client interface keeps storage interactions mockable in unit tests
// (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
