package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"device-inventory/core/reconcile"
)

// FileSink writes each report as indented JSON. Every pass replaces the
// previous file content.
type FileSink struct {
	path   string
	stdout io.Writer
}

// NewFileSink creates a file sink. A path of "-" writes to stdout.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, stdout: os.Stdout}
}

// Name returns the sink name.
func (s *FileSink) Name() string { return SinkFile }

// Export writes the report.
func (s *FileSink) Export(ctx context.Context, report *reconcile.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.path == "" || s.path == "-" {
		return writeJSON(s.stdout, report)
	}

	// Write to a temp file first so readers never see a partial snapshot
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if err := writeJSON(f, report); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *FileSink) Close() error { return nil }

func writeJSON(w io.Writer, report *reconcile.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
