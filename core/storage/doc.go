// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface used by the
// snapshot export and by offline fixture loading. Both AWS S3 and self-hosted
// MinIO instances are supported.
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket provisioning (see EnsureBucket).
//   - PutObject: snapshot upload.
//   - GetObject: fixture download.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
//	    return err
//	}
package storage
