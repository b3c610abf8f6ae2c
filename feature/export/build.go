package export

import (
	"context"
	"fmt"

	"device-inventory/core/database"
	"device-inventory/core/storage"

	"go.uber.org/zap"
)

// Deps carries the backend settings the sinks connect with.
type Deps struct {
	Database database.Config
	Storage  storage.Config
}

// Build creates an exporter for every sink named in cfg. Sinks already
// opened are closed if a later one fails to start.
func Build(ctx context.Context, cfg Config, deps Deps, logger *zap.Logger) (*Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var sinks []Sink
	fail := func(err error) (*Exporter, error) {
		_ = NewExporter(logger, sinks...).Close()
		return nil, err
	}

	for _, name := range cfg.SinkNames() {
		switch name {
		case SinkFile:
			sinks = append(sinks, NewFileSink(cfg.FilePath))

		case SinkDatabase:
			db, err := database.Connect(deps.Database)
			if err != nil {
				return fail(err)
			}
			sink := NewDatabaseSink(db)
			if err := sink.Migrate(ctx); err != nil {
				_ = sink.Close()
				return fail(err)
			}
			sinks = append(sinks, sink)

		case SinkStorage:
			client, err := storage.NewClient(deps.Storage)
			if err != nil {
				return fail(fmt.Errorf("failed to create storage client: %w", err))
			}
			if err := storage.EnsureBucket(ctx, client, deps.Storage.Bucket, deps.Storage.Region); err != nil {
				return fail(err)
			}
			sinks = append(sinks, NewStorageSink(client, deps.Storage.Bucket, cfg.Prefix))

		case SinkNATS:
			sink, err := ConnectNATS(cfg.NATS)
			if err != nil {
				return fail(err)
			}
			sinks = append(sinks, sink)

		default:
			return fail(fmt.Errorf("unknown export sink %q", name))
		}
		logger.Info("Export sink enabled", zap.String("sink", name))
	}

	return NewExporter(logger, sinks...), nil
}
