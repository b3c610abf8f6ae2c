package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"device-inventory/core/reconcile"
	"device-inventory/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageSink uploads one JSON object per pass.
type StorageSink struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageSink creates an object storage sink.
func NewStorageSink(client storage.Client, bucket, prefix string) *StorageSink {
	return &StorageSink{client: client, bucket: bucket, prefix: prefix}
}

// Name returns the sink name.
func (s *StorageSink) Name() string { return SinkStorage }

// ObjectName returns the object key for a pass.
func (s *StorageSink) ObjectName(passID string) string {
	return path.Join(s.prefix, passID+".json")
}

// Export uploads the report.
func (s *StorageSink) Export(ctx context.Context, report *reconcile.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	object := s.ObjectName(report.PassID)
	_, err = s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", object, err)
	}
	return nil
}

// Close is a no-op; the minio client holds no per-sink resources.
func (s *StorageSink) Close() error { return nil }
