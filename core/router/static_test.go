package router_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"device-inventory/core/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSession_Query(t *testing.T) {
	session := router.NewStaticSession(map[string][]router.Row{
		router.PathARP: {
			{"address": "10.0.0.5", "mac-address": "AA:BB:CC:00:11:22", "interface": "bridge1"},
			{"address": "10.0.0.6", "mac-address": "AA:BB:CC:00:11:33", "interface": "ether2"},
		},
	})
	ctx := context.Background()

	t.Run("NoFilter", func(t *testing.T) {
		rows, err := session.Query(ctx, router.PathARP, nil)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("ExactMatch", func(t *testing.T) {
		rows, err := session.Query(ctx, router.PathARP, router.Filter{"mac-address": "AA:BB:CC:00:11:33"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "10.0.0.6", rows[0].Get("address"))
	})

	t.Run("NoMatch", func(t *testing.T) {
		rows, err := session.Query(ctx, router.PathARP, router.Filter{"mac-address": "aa:bb:cc:00:11:33"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("UnknownPath", func(t *testing.T) {
		rows, err := session.Query(ctx, router.PathBridgeHost, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("ReturnsCopies", func(t *testing.T) {
		rows, err := session.Query(ctx, router.PathARP, nil)
		require.NoError(t, err)
		rows[0]["address"] = "changed"

		again, err := session.Query(ctx, router.PathARP, nil)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.5", again[0].Get("address"))
	})
}

func TestStaticSession_Failures(t *testing.T) {
	session := router.NewStaticSession(nil)
	session.FailPath(router.PathARP, errors.New("boom"))

	_, err := session.Query(context.Background(), router.PathARP, nil)
	assert.True(t, errors.Is(err, router.ErrQuery))
	assert.Contains(t, err.Error(), "boom")

	require.NoError(t, session.Close())
	assert.True(t, session.Closed())

	_, err = session.Query(context.Background(), router.PathDHCPLease, nil)
	assert.True(t, errors.Is(err, router.ErrSessionClosed))
	assert.Equal(t, 2, session.Calls())
}

func TestLoadFixture(t *testing.T) {
	doc := `{"/ip/dhcp-server/lease": [{"address": "10.0.0.5", "mac-address": "AA:BB:CC:00:11:22", "status": "bound"}]}`

	session, err := router.LoadFixture(strings.NewReader(doc))
	require.NoError(t, err)

	rows, err := session.Query(context.Background(), router.PathDHCPLease, router.Filter{"status": "bound"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AA:BB:CC:00:11:22", rows[0].Get("mac-address"))

	_, err = router.LoadFixture(strings.NewReader("not json"))
	assert.Error(t, err)
}
