package export

import (
	"context"
	"errors"
	"fmt"

	"device-inventory/core/reconcile"

	"go.uber.org/zap"
)

// Sink receives completed reports.
type Sink interface {
	// Name identifies the sink in logs and errors.
	Name() string
	// Export writes one report.
	Export(ctx context.Context, report *reconcile.Report) error
	// Close releases the sink's resources.
	Close() error
}

// Exporter fans a report out to several sinks.
type Exporter struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewExporter creates an exporter over the given sinks.
func NewExporter(logger *zap.Logger, sinks ...Sink) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{sinks: sinks, logger: logger}
}

// Len returns the number of sinks.
func (e *Exporter) Len() int {
	if e == nil {
		return 0
	}
	return len(e.sinks)
}

// Export runs every sink and joins their errors.
func (e *Exporter) Export(ctx context.Context, report *reconcile.Report) error {
	if e == nil {
		return nil
	}
	var errs []error
	for _, sink := range e.sinks {
		if err := sink.Export(ctx, report); err != nil {
			e.logger.Error("Export failed", zap.String("sink", sink.Name()), zap.String("pass_id", report.PassID), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s sink: %w", sink.Name(), err))
			continue
		}
		e.logger.Debug("Exported report", zap.String("sink", sink.Name()), zap.String("pass_id", report.PassID))
	}
	return errors.Join(errs...)
}

// Close closes every sink and joins their errors.
func (e *Exporter) Close() error {
	if e == nil {
		return nil
	}
	var errs []error
	for _, sink := range e.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s sink: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}
