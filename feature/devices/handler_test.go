package devices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"device-inventory/core/reconcile"
	"device-inventory/core/router"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(opener *staticOpener) *fiber.App {
	app := fiber.New()
	feature := NewFeature(NewService(opener.Open, Options{}, nil, nil))
	_ = feature.Load(app)
	return app
}

func decode(t *testing.T, body io.Reader, v any) {
	t.Helper()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestHandleListDevices(t *testing.T) {
	app := newTestApp(&staticOpener{tables: fixtureTables()})

	resp, err := app.Test(httptest.NewRequest("GET", "/devices", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report reconcile.Report
	decode(t, resp.Body, &report)
	assert.Len(t, report.Devices, 2)
	assert.Equal(t, 1, report.Summary.Conflicts)
	assert.NotEmpty(t, report.PassID)
}

func TestHandleListDevices_ConflictsOnly(t *testing.T) {
	app := newTestApp(&staticOpener{tables: fixtureTables()})

	resp, err := app.Test(httptest.NewRequest("GET", "/devices?conflicts=true", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report reconcile.Report
	decode(t, resp.Body, &report)
	require.Len(t, report.Devices, 1)
	assert.Equal(t, "AA:BB:CC:00:11:33", report.Devices[0].MACAddress)
	assert.Equal(t, "10.0.0.9", report.Devices[0].ConflictDetails[reconcile.ConflictIPMismatch]["arp_ip"])
}

func TestHandleListDevices_BadQuery(t *testing.T) {
	app := newTestApp(&staticOpener{tables: fixtureTables()})

	resp, err := app.Test(httptest.NewRequest("GET", "/devices?conflicts=maybe", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleListDevices_Errors(t *testing.T) {
	noLeases := fixtureTables()
	noLeases[router.PathDHCPLease] = nil

	tests := []struct {
		name   string
		opener *staticOpener
		status int
	}{
		{"No Leases", &staticOpener{tables: noLeases}, fiber.StatusNotFound},
		{"Connection", &staticOpener{err: fmt.Errorf("%w: refused", router.ErrConnection)}, fiber.StatusBadGateway},
		{"Configuration", &staticOpener{err: fmt.Errorf("%w: missing host", router.ErrConfiguration)}, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newTestApp(tt.opener).Test(httptest.NewRequest("GET", "/devices", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]string
			decode(t, resp.Body, &body)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleListDevices_QueryFailure(t *testing.T) {
	opener := &staticOpener{tables: fixtureTables()}
	app := fiber.New()
	svc := NewService(func(ctx context.Context) (router.Session, error) {
		s, err := opener.Open(ctx)
		if err == nil {
			s.(*router.StaticSession).FailPath(router.PathDHCPLease, fmt.Errorf("trap"))
		}
		return s, err
	}, Options{}, nil, nil)
	NewHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/devices", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestHandleGetDevice(t *testing.T) {
	app := newTestApp(&staticOpener{tables: fixtureTables()})

	resp, err := app.Test(httptest.NewRequest("GET", "/devices/aa:bb:cc:00:11:22", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view reconcile.MergedView
	decode(t, resp.Body, &view)
	assert.Equal(t, "10.0.0.5", view.IPAddress)
	assert.Equal(t, "laptop", view.Hostname)

	resp, err = app.Test(httptest.NewRequest("GET", "/devices/00:00:00:00:00:00", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleGetDevice_EscapedMAC(t *testing.T) {
	app := newTestApp(&staticOpener{tables: fixtureTables()})

	resp, err := app.Test(httptest.NewRequest("GET", "/devices/AA%3ABB%3ACC%3A00%3A11%3A22", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view reconcile.MergedView
	decode(t, resp.Body, &view)
	assert.Equal(t, "AA:BB:CC:00:11:22", view.MACAddress)
}

func TestFeature(t *testing.T) {
	feature := NewFeature(NewService((&staticOpener{}).Open, Options{}, nil, nil))
	assert.Equal(t, "devices", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.False(t, NewFeature(nil).IsEnabled())
}
