// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface (mocked in
// core/storage/mocks) and builds the notification Archive on top of it.
//
// # Archive
//
// Every accepted webhook body is written verbatim as
// <prefix>/YYYY/MM/DD/<uuid>.json before it is split and enqueued. The replay command lists
// and reloads these objects to push them through the pipeline again.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archive := storage.NewArchive(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
//	key, err := archive.Store(ctx, body)
package storage
