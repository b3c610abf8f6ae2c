// Package export writes inventory snapshots to external sinks.
//
// Sinks are write-only; nothing reads snapshots back. Each completed report
// is handed to every configured sink:
//
//   - file:     indented JSON to a file, or stdout for "-"
//   - database: one row per device in device_snapshots (gorm; MySQL or SQLite)
//   - storage:  one JSON object per pass under <prefix>/<pass-id>.json (MinIO/S3)
//   - nats:     one JSON message per pass on the configured subject
//
// A failing sink does not stop the others; Exporter.Export returns the joined
// errors after every sink has run.
package export
