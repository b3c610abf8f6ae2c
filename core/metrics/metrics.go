package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"device-inventory/core/reconcile"
	"device-inventory/core/router"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the application's Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Passes         *prometheus.CounterVec
	PassDuration   prometheus.Histogram
	Devices        prometheus.Gauge
	Conflicts      prometheus.Gauge
	SkippedLeases  prometheus.Gauge
	DroppedDevices prometheus.Gauge
	LookupFailures prometheus.Counter
	Queries        *prometheus.CounterVec
	QueryDuration  *prometheus.HistogramVec
	HTTPRequests   *prometheus.CounterVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	passes, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_passes_total",
		Help: "Reconciliation passes, labeled by result.",
	}, []string{"result"}), "inventory_passes_total")
	if err != nil {
		return nil, err
	}

	passDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inventory_pass_duration_seconds",
		Help:    "Duration of successful reconciliation passes in seconds.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}), "inventory_pass_duration_seconds")
	if err != nil {
		return nil, err
	}

	devices, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_devices",
		Help: "Devices reported by the last pass.",
	}), "inventory_devices")
	if err != nil {
		return nil, err
	}
	conflicts, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_conflicting_devices",
		Help: "Devices with at least one DHCP/ARP conflict in the last pass.",
	}), "inventory_conflicting_devices")
	if err != nil {
		return nil, err
	}
	skipped, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_skipped_leases",
		Help: "Lease rows without an address or hardware address in the last pass.",
	}), "inventory_skipped_leases")
	if err != nil {
		return nil, err
	}
	dropped, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_dropped_devices",
		Help: "Devices dropped for missing identity in the last pass.",
	}), "inventory_dropped_devices")
	if err != nil {
		return nil, err
	}

	lookupFailures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_lookup_failures_total",
		Help: "Tolerated ARP and bridge lookup failures.",
	}), "inventory_lookup_failures_total")
	if err != nil {
		return nil, err
	}

	queries, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "router_queries_total",
		Help: "Router API queries, labeled by resource path and result.",
	}, []string{"path", "result"}), "router_queries_total")
	if err != nil {
		return nil, err
	}

	queryDuration, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "router_query_duration_seconds",
		Help:    "Router API query latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"path"}), "router_query_duration_seconds")
	if err != nil {
		return nil, err
	}

	httpRequests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests, labeled by method, route and status code.",
	}, []string{"method", "route", "code"}), "http_requests_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		Passes:         passes,
		PassDuration:   passDuration,
		Devices:        devices,
		Conflicts:      conflicts,
		SkippedLeases:  skipped,
		DroppedDevices: dropped,
		LookupFailures: lookupFailures,
		Queries:        queries,
		QueryDuration:  queryDuration,
		HTTPRequests:   httpRequests,
	}, nil
}

// ObserveReport records a successful pass.
func (c *Collector) ObserveReport(report *reconcile.Report, duration time.Duration) {
	if c == nil || report == nil {
		return
	}
	c.Passes.WithLabelValues("ok").Inc()
	c.PassDuration.Observe(duration.Seconds())
	c.Devices.Set(float64(report.Summary.Devices))
	c.Conflicts.Set(float64(report.Summary.Conflicts))
	c.SkippedLeases.Set(float64(report.Summary.Skipped))
	c.DroppedDevices.Set(float64(report.Summary.Dropped))
	c.LookupFailures.Add(float64(report.Summary.LookupFailures))
}

// ObservePassError records a failed pass.
func (c *Collector) ObservePassError(err error) {
	if c == nil || err == nil {
		return
	}
	c.Passes.WithLabelValues(PassResult(err)).Inc()
}

// PassResult maps a pass error to its result label.
func PassResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, reconcile.ErrNoLeasesFound):
		return "no_leases"
	case errors.Is(err, router.ErrConfiguration):
		return "configuration"
	case errors.Is(err, router.ErrConnection):
		return "connection"
	case errors.Is(err, router.ErrQuery):
		return "query"
	default:
		return "error"
	}
}

// InstrumentSession wraps a session so every query is counted and timed.
func (c *Collector) InstrumentSession(session router.Session) router.Session {
	if c == nil {
		return session
	}
	return &instrumentedSession{Session: session, collector: c}
}

type instrumentedSession struct {
	router.Session
	collector *Collector
}

func (s *instrumentedSession) Query(ctx context.Context, path string, filter router.Filter) ([]router.Row, error) {
	start := time.Now()
	rows, err := s.Session.Query(ctx, path, filter)
	s.collector.QueryDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
	}
	s.collector.Queries.WithLabelValues(path, result).Inc()
	return rows, err
}

// Middleware counts handled HTTP requests by route pattern.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if c == nil {
			return err
		}
		status := ctx.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		c.HTTPRequests.WithLabelValues(ctx.Method(), ctx.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
