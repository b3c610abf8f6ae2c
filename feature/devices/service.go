package devices

import (
	"context"
	"fmt"
	"time"

	"device-inventory/core/metrics"
	"device-inventory/core/reconcile"
	"device-inventory/core/router"
	"device-inventory/feature/arp"
	"device-inventory/feature/bridge"
	"device-inventory/feature/dhcp"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Options configure the passes run by a Service.
type Options struct {
	// Reconcile tunes the engine.
	Reconcile reconcile.Options
	// IncludeBridge enables the bridge host lookup.
	IncludeBridge bool
	// Timeout bounds a shared pass in Report. Zero means no extra bound.
	Timeout time.Duration
}

// Service handles reconciliation passes.
type Service struct {
	open    router.Opener
	opts    Options
	metrics *metrics.Collector
	logger  *zap.Logger
	group   singleflight.Group
}

// NewService creates a new devices service. collector may be nil.
func NewService(open router.Opener, opts Options, collector *metrics.Collector, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		open:    open,
		opts:    opts,
		metrics: collector,
		logger:  logger,
	}
}

// Run executes one pass on a fresh session and projects the report.
// The session is closed on every exit path.
func (s *Service) Run(ctx context.Context) (*reconcile.Report, error) {
	start := time.Now()

	report, err := s.run(ctx)
	if err != nil {
		s.metrics.ObservePassError(err)
		return nil, err
	}

	s.metrics.ObserveReport(report, time.Since(start))
	return report, nil
}

func (s *Service) run(ctx context.Context) (*reconcile.Report, error) {
	session, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			s.logger.Warn("Failed to close router session", zap.Error(cerr))
		}
	}()

	session = s.metrics.InstrumentSession(session)

	sources := reconcile.Sources{
		Leases: dhcp.NewSource(session, s.logger),
		ARP:    arp.NewSource(session, s.logger),
	}
	if s.opts.IncludeBridge {
		sources.Bridge = bridge.NewSource(session, s.logger)
	}

	pass, err := reconcile.NewEngine(sources, s.opts.Reconcile, s.logger).Run(ctx)
	if err != nil {
		return nil, err
	}

	return reconcile.BuildReport(pass, s.logger), nil
}

// Report runs a pass shared by every concurrent caller. The result is not
// retained once the pass returns. The shared pass is detached from the first
// caller's cancellation and bounded by Options.Timeout instead.
func (s *Service) Report(ctx context.Context) (*reconcile.Report, error) {
	ch := s.group.DoChan("pass", func() (any, error) {
		passCtx := context.WithoutCancel(ctx)
		if s.opts.Timeout > 0 {
			var cancel context.CancelFunc
			passCtx, cancel = context.WithTimeout(passCtx, s.opts.Timeout)
			defer cancel()
		}
		return s.Run(passCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		report, ok := res.Val.(*reconcile.Report)
		if !ok {
			return nil, fmt.Errorf("unexpected pass result %T", res.Val)
		}
		return report, nil
	}
}

// Device returns the merged view of one device from a shared pass.
func (s *Service) Device(ctx context.Context, mac string) (*reconcile.MergedView, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	view, ok := report.Find(mac)
	if !ok {
		return nil, nil
	}
	return &view, nil
}
