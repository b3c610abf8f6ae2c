package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"device-inventory/core/reconcile"
	"device-inventory/core/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollector(t *testing.T) *Collector {
	t.Helper()
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	return c
}

func TestNewCollector_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	first.Passes.WithLabelValues("ok").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.Passes.WithLabelValues("ok")))
}

func TestObserveReport(t *testing.T) {
	c := newCollector(t)

	c.ObserveReport(&reconcile.Report{Summary: reconcile.Summary{
		Devices:        7,
		Conflicts:      2,
		Skipped:        1,
		Dropped:        1,
		LookupFailures: 3,
	}}, 250*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Passes.WithLabelValues("ok")))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.Devices))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Conflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SkippedLeases))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.DroppedDevices))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.LookupFailures))
}

func TestPassResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{reconcile.ErrNoLeasesFound, "no_leases"},
		{fmt.Errorf("open: %w", router.ErrConfiguration), "configuration"},
		{fmt.Errorf("open: %w", router.ErrConnection), "connection"},
		{fmt.Errorf("leases: %w", router.ErrQuery), "query"},
		{errors.New("other"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PassResult(tt.err))
		})
	}
}

func TestObservePassError(t *testing.T) {
	c := newCollector(t)

	c.ObservePassError(reconcile.ErrNoLeasesFound)
	c.ObservePassError(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Passes.WithLabelValues("no_leases")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Passes.WithLabelValues("ok")))
}

func TestInstrumentSession(t *testing.T) {
	c := newCollector(t)
	static := router.NewStaticSession(map[string][]router.Row{
		router.PathARP: {{"address": "10.0.0.5"}},
	})
	static.FailPath(router.PathDHCPLease, errors.New("trap"))

	session := c.InstrumentSession(static)

	rows, err := session.Query(context.Background(), router.PathARP, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = session.Query(context.Background(), router.PathDHCPLease, nil)
	assert.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues(router.PathARP, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues(router.PathDHCPLease, "error")))

	require.NoError(t, session.Close())
	assert.True(t, static.Closed())
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	static := router.NewStaticSession(nil)

	assert.NotPanics(t, func() {
		c.ObserveReport(&reconcile.Report{}, time.Second)
		c.ObservePassError(errors.New("x"))
	})
	assert.Same(t, static, c.InstrumentSession(static))
}

func TestMiddlewareAndHandler(t *testing.T) {
	c := newCollector(t)

	app := fiber.New()
	app.Use(c.Middleware())
	app.Get("/metrics", adaptor.HTTPHandler(c.Handler()))
	app.Get("/devices/:mac", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "device not found")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/devices/AA", nil))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/devices/:mac", "404")))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "http_requests_total"))
}
