package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"device-inventory/core/config"
	"device-inventory/core/logger"
	"device-inventory/core/router"
	"device-inventory/feature/devices"
	"device-inventory/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the report command
	reportActive        bool
	reportBridge        bool
	reportFormat        string
	reportExport        string
	reportARPPolicy     string
	reportStrict        bool
	reportInterval      time.Duration
	reportConflictsOnly bool
)

// reportCmd runs reconciliation passes and prints the merged device table.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reconcile DHCP, ARP and bridge data into a device report",
	Long: `Connects to the router, reads DHCP leases, looks up the ARP (and optionally
bridge host) entries of every leased device and prints one merged record per device.

Devices whose DHCP and ARP views disagree are flagged as conflicts.

Examples:
  # One pass, table output
  device-inventory report

  # Bound leases only, with bridge ports, as JSON
  device-inventory report --active --bridge --format json

  # Every five minutes, exporting each pass to the database and NATS
  device-inventory report --interval 5m --export database,nats`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportActive, "active", false, "Only reconcile bound leases")
	reportCmd.Flags().BoolVar(&reportBridge, "bridge", false, "Look up bridge host entries")
	reportCmd.Flags().StringVar(&reportFormat, "format", devices.FormatText, "Output format (text or json)")
	reportCmd.Flags().StringVar(&reportExport, "export", "", "Comma-separated export sinks (file, database, storage, nats)")
	reportCmd.Flags().StringVar(&reportARPPolicy, "arp-policy", "", "Handling of multiple ARP rows per device (first or flag)")
	reportCmd.Flags().BoolVar(&reportStrict, "strict", false, "Abort the pass when an ARP or bridge lookup fails")
	reportCmd.Flags().DurationVar(&reportInterval, "interval", 0, "Repeat the pass at this interval until interrupted")
	reportCmd.Flags().BoolVar(&reportConflictsOnly, "conflicts", false, "Only print devices with conflicts")

	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	// 1. Load configuration, flags override file and environment
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("active") {
		cfg.Reconcile.ActiveOnly = reportActive
	}
	if flags.Changed("bridge") {
		cfg.Reconcile.IncludeBridge = reportBridge
	}
	if flags.Changed("arp-policy") {
		cfg.Reconcile.ARPPolicy = reportARPPolicy
	}
	if flags.Changed("strict") {
		cfg.Reconcile.StrictLookups = reportStrict
	}
	if flags.Changed("export") {
		cfg.Export.Sinks = reportExport
	}
	if reportFormat != devices.FormatText && reportFormat != devices.FormatJSON {
		return fmt.Errorf("unsupported format %q (expected text or json)", reportFormat)
	}
	// The report itself is printed to stdout
	if cfg.Export.WritesStdout() {
		return errors.New("file export to stdout would mix with the printed report; set export.file_path to a file")
	}

	opts, err := cfg.Reconcile.Options()
	if err != nil {
		return err
	}
	if err := cfg.Router.Validate(); err != nil {
		return err
	}

	// 2. Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Start export sinks
	exporter, err := export.Build(ctx, cfg.Export, export.Deps{Database: cfg.Database, Storage: cfg.Storage}, l)
	if err != nil {
		return fmt.Errorf("failed to start export: %w", err)
	}
	defer func() {
		if err := exporter.Close(); err != nil {
			l.Warn("Failed to close export sinks", zap.Error(err))
		}
	}()

	svc := devices.NewService(router.NewOpener(cfg.Router, l), devices.Options{
		Reconcile:     opts,
		IncludeBridge: cfg.Reconcile.IncludeBridge,
	}, nil, l)

	pass := func() error {
		report, err := svc.Run(ctx)
		if err != nil {
			return err
		}
		view := report
		if reportConflictsOnly {
			view = report.WithConflictsOnly()
		}
		if err := devices.Render(os.Stdout, view, reportFormat, cfg.Reconcile.IncludeBridge); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		if exporter.Len() == 0 {
			return nil
		}
		return exporter.Export(ctx, report)
	}

	// 4. Single pass
	if reportInterval <= 0 {
		return pass()
	}

	// 5. Periodic passes; only configuration errors stop the loop
	l.Info("Starting periodic reconciliation", zap.Duration("interval", reportInterval))
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	for {
		if err := pass(); err != nil {
			if errors.Is(err, router.ErrConfiguration) {
				return err
			}
			if ctx.Err() == nil {
				l.Error("Reconciliation pass failed", zap.Error(err))
			}
		}

		select {
		case <-ctx.Done():
			l.Info("Stopping periodic reconciliation")
			return nil
		case <-ticker.C:
		}
	}
}
