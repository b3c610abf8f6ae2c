package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"device-inventory/core/config"
	"device-inventory/core/logger"
	"device-inventory/core/router"
	"device-inventory/core/storage"
	"device-inventory/feature/devices"

	"github.com/minio/minio-go/v7"
)

// Runs one reconciliation pass against recorded router rows instead of a live router.
//
// Usage:
//
//	debug_reconcile fixture.json
//	debug_reconcile storage:fixtures/office.json
//
// A "storage:" argument is read from the configured bucket.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_reconcile <fixture.json | storage:object>")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	cfg.Log.Level = "debug"
	l, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// Load fixture
	r, err := openFixture(ctx, cfg.Storage, os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	session, err := router.LoadFixture(r)
	_ = r.Close()
	if err != nil {
		log.Fatal(err)
	}

	opts, err := cfg.Reconcile.Options()
	if err != nil {
		log.Fatal(err)
	}

	open := func(context.Context) (router.Session, error) { return session, nil }
	svc := devices.NewService(open, devices.Options{
		Reconcile:     opts,
		IncludeBridge: cfg.Reconcile.IncludeBridge,
	}, nil, l)

	report, err := svc.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}

	if err := devices.Render(os.Stdout, report, devices.FormatText, cfg.Reconcile.IncludeBridge); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Queries issued: %d, session closed: %v\n", session.Calls(), session.Closed())
}

func openFixture(ctx context.Context, cfg storage.Config, arg string) (io.ReadCloser, error) {
	object, ok := strings.CutPrefix(arg, "storage:")
	if !ok {
		return os.Open(arg)
	}

	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return client.GetObject(ctx, cfg.Bucket, object, minio.GetObjectOptions{})
}
